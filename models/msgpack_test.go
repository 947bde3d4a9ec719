package models

import (
	"strings"
	"testing"
)

func TestMsgPackImageRoundTrip(t *testing.T) {
	const image = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

	encoded, err := EncodeMsgPackImage(image)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded == image {
		t.Error("encoded form should differ from the raw data URI")
	}

	decoded, err := DecodeMsgPackImage(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != image {
		t.Errorf("round trip mismatch: got %q", decoded)
	}
}

func TestMsgPackImageEmptyPassthrough(t *testing.T) {
	if encoded, err := EncodeMsgPackImage(""); err != nil || encoded != "" {
		t.Errorf("empty image should stay empty, got %q, %v", encoded, err)
	}
	if decoded, err := DecodeMsgPackImage(""); err != nil || decoded != "" {
		t.Errorf("empty encoding should stay empty, got %q, %v", decoded, err)
	}
}

func TestDecodeMsgPackImageBadBase64(t *testing.T) {
	if _, err := DecodeMsgPackImage("not base64!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
}

func TestMsgPackEventConversion(t *testing.T) {
	ev := EventRecord{
		ID:       "ab12",
		DateISO:  "2021-06-01",
		Title:    "Summit",
		Category: "Travel",
		Notes:    "Cloudy at the top",
		Image:    "data:image/jpeg;base64,/9j/4AAQ",
	}

	packed, err := ev.ToMsgPackEvent()
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if packed.ImageEncoded == "" || strings.Contains(packed.ImageEncoded, "data:") {
		t.Errorf("image should be wrapped, got %q", packed.ImageEncoded)
	}

	back, err := packed.ToEventRecord()
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if back != ev {
		t.Errorf("conversion round trip mismatch: %+v", back)
	}
}
