package models

import (
	"encoding/base64"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackEvent is the JSON shape of an event when msgpack encoding is in
// effect for the image field. All other fields remain regular JSON values.
//
// Design rationale: images are data URIs and dwarf every other field, so a
// hybrid JSON/msgpack approach pays off there and nowhere else — metadata
// stays human-readable for debugging while the heavy field shrinks on the
// wire. Clients signal msgpack mode via the X-Body-Encoding: msgpack header.
type MsgPackEvent struct {
	ID           string `json:"id"`
	DateISO      string `json:"dateISO"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Notes        string `json:"notes"`
	ImageEncoded string `json:"image_encoded"` // Base64-encoded msgpack bytes
}

// EncodeMsgPackImage encodes an image value to Base64-wrapped msgpack bytes.
//
// Pipeline: string -> msgpack bytes -> Base64 string. Empty input stays
// empty so records without images round-trip unchanged.
func EncodeMsgPackImage(image string) (string, error) {
	if image == "" {
		return "", nil
	}

	msgpackBytes, err := msgpack.Marshal(image)
	if err != nil {
		return "", serr.Wrap(err, "failed to msgpack encode image")
	}

	return base64.StdEncoding.EncodeToString(msgpackBytes), nil
}

// DecodeMsgPackImage reverses EncodeMsgPackImage.
func DecodeMsgPackImage(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	msgpackBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", serr.Wrap(err, "failed to decode base64 image")
	}

	var image string
	if err := msgpack.Unmarshal(msgpackBytes, &image); err != nil {
		return "", serr.Wrap(err, "failed to unmarshal msgpack image")
	}

	return image, nil
}

// ToMsgPackEvent converts an EventRecord for msgpack-mode responses.
func (e *EventRecord) ToMsgPackEvent() (*MsgPackEvent, error) {
	encoded, err := EncodeMsgPackImage(e.Image)
	if err != nil {
		return nil, err
	}
	return &MsgPackEvent{
		ID:           e.ID,
		DateISO:      e.DateISO,
		Title:        e.Title,
		Category:     e.Category,
		Notes:        e.Notes,
		ImageEncoded: encoded,
	}, nil
}

// ToEventRecord converts a msgpack-mode request back to the canonical form.
func (m *MsgPackEvent) ToEventRecord() (EventRecord, error) {
	image, err := DecodeMsgPackImage(m.ImageEncoded)
	if err != nil {
		return EventRecord{}, err
	}
	return EventRecord{
		ID:       m.ID,
		DateISO:  m.DateISO,
		Title:    m.Title,
		Category: m.Category,
		Notes:    m.Notes,
		Image:    image,
	}, nil
}
