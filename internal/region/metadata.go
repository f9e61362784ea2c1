package region

import (
	"encoding/json"
	"fmt"
	"sort"

	"biblefetch/internal/fileutil"
)

// MetadataEntry is the per-region block of regions.json. The language list
// key is shortened to "l" since the file ships inside every region archive.
type MetadataEntry struct {
	Languages   []string `json:"l"`
	Trade       []string `json:"trade,omitempty"`
	Regional    []string `json:"regional,omitempty"`
	Educational []string `json:"educational,omitempty"`
	Literacy    []string `json:"literacy,omitempty"`
}

// Metadata converts parsed regions into the regions.json structure, keyed by
// region id.
func Metadata(regions []Region) map[string]MetadataEntry {
	out := make(map[string]MetadataEntry, len(regions))
	for _, r := range regions {
		out[r.ID()] = MetadataEntry{
			Languages:   r.Languages,
			Trade:       r.Trade,
			Regional:    r.Regional,
			Educational: r.Educational,
			Literacy:    r.Literacy,
		}
	}
	return out
}

// WriteMetadata writes the readable regions.json and a compact regions.zip
// next to the export tree.
func WriteMetadata(regions []Region, jsonPath, zipPath string) error {
	metadata := Metadata(regions)

	readable, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("encode regions metadata: %w", err)
	}
	readable = append(readable, '\n')
	if err := fileutil.WriteFileAtomic(jsonPath, readable, 0o644); err != nil {
		return fmt.Errorf("write regions metadata: %w", err)
	}

	compact, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode regions metadata: %w", err)
	}
	return writeSingleFileZip(zipPath, "regions.json", compact)
}

// IDs returns the region ids in sorted order.
func IDs(regions []Region) []string {
	ids := make([]string, 0, len(regions))
	for _, r := range regions {
		ids = append(ids, r.ID())
	}
	sort.Strings(ids)
	return ids
}
