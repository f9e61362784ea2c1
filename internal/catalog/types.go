package catalog

// FilesetDescriptor is one fileset entry inside a catalog record. Fields
// beyond id/type/size pass through to output without affecting
// classification.
type FilesetDescriptor struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Size   string `json:"size"`
	Volume string `json:"volume,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Record is one raw translation record from the catalog API.
type Record struct {
	Abbr         string                         `json:"abbr"`
	Name         string                         `json:"name"`
	VName        string                         `json:"vname"`
	Date         string                         `json:"date"`
	ISO          string                         `json:"iso"`
	LanguageID   int64                          `json:"language_id"`
	Language     string                         `json:"language"`
	Autonym      string                         `json:"autonym"`
	RolvCode     string                         `json:"language_rolv_code,omitempty"`
	Mark         string                         `json:"mark,omitempty"`
	Country      string                         `json:"country,omitempty"`
	Description  string                         `json:"description,omitempty"`
	VDescription string                         `json:"vdescription,omitempty"`
	Filesets     map[string][]FilesetDescriptor `json:"filesets"`
}

// ExtendedMeta is the descriptive overlay for one translation abbreviation.
// It is merged into output metadata and never influences classification.
type ExtendedMeta struct {
	Mark         string `json:"mark,omitempty"`
	Country      string `json:"country,omitempty"`
	Description  string `json:"description,omitempty"`
	VDescription string `json:"vdescription,omitempty"`
}

// Empty reports whether the overlay carries no fields.
func (m ExtendedMeta) Empty() bool {
	return m.Mark == "" && m.Country == "" && m.Description == "" && m.VDescription == ""
}

// merge fills missing fields from other, keeping existing values.
func (m ExtendedMeta) merge(other ExtendedMeta) ExtendedMeta {
	if m.Mark == "" {
		m.Mark = other.Mark
	}
	if m.Country == "" {
		m.Country = other.Country
	}
	if m.Description == "" {
		m.Description = other.Description
	}
	if m.VDescription == "" {
		m.VDescription = other.VDescription
	}
	return m
}

// Snapshot is one immutable catalog state the engine runs against.
type Snapshot struct {
	Records   []Record
	TimingIDs []string
	Extended  map[string]ExtendedMeta
}
