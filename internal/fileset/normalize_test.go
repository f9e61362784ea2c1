package fileset

import "testing"

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"AAAMLTN1DA-opus16", "AAAMLTN1DA"},
		{"AAAMLTN1DA-opus32", "AAAMLTN1DA"},
		{"ENGWEBN2DA-mp3-64", "ENGWEBN2DA"},
		{"ENGWEBN2DA-mp3-128", "ENGWEBN2DA"},
		{"ENGWEBN2DA-mp3", "ENGWEBN2DA"},
		{"ENGESV_ET-json", "ENGESV_ET"},
		{"ENGESV_ET-usx", "ENGESV_ET"},
		{"ENGESV_ET-html", "ENGESV_ET"},
		{"ENGWEBN1DA", "ENGWEBN1DA"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeID(tc.in); got != tc.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIDStripsOneSuffixOnly(t *testing.T) {
	t.Parallel()

	// A single pass must not keep stripping after the first match.
	if got := NormalizeID("ENGESV_ET-json-json"); got != "ENGESV_ET-json" {
		t.Fatalf("NormalizeID stripped more than one suffix: %q", got)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Kind
	}{
		{"audio", KindAudio},
		{"audio_stream", KindAudio},
		{"audio_drama", KindAudio},
		{"audio_drama_stream", KindAudio},
		{"text_plain", KindText},
		{"text_usx", KindText},
		{"text_json", KindText},
		{"text_format", KindText},
		{"video_stream", KindUnknown},
		{"", KindUnknown},
	}

	for _, tc := range cases {
		if got := KindOf(tc.in); got != tc.want {
			t.Errorf("KindOf(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
