package probe

import "testing"

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "3725.480000", "size": "1073741824"},
		"streams": [
			{"codec_type": "video", "codec_name": "mjpeg", "width": 600, "height": 600,
			 "disposition": {"attached_pic": 1}},
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
			 "disposition": {"attached_pic": 0}},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`)

	r, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.Duration != 3725.48 {
		t.Errorf("Duration = %v, want 3725.48", r.Duration)
	}
	if r.Size != 1073741824 {
		t.Errorf("Size = %d, want 1073741824", r.Size)
	}
	if r.Width != 1920 || r.Height != 1080 {
		t.Errorf("resolution = %dx%d, want 1920x1080", r.Width, r.Height)
	}
	if r.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", r.Codec)
	}
}

func TestParseJSONNoVideoStream(t *testing.T) {
	r, err := ParseJSON([]byte(`{"format": {"duration": "180.0"}, "streams": [{"codec_type": "audio"}]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.Width != 0 || r.Codec != "" {
		t.Errorf("expected empty video facts, got %dx%d %q", r.Width, r.Height, r.Codec)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
