// Package validation checks uploaded attachment content before anything is
// written to storage. Type detection is done on the bytes themselves; the
// client-declared content type and filename extension are never trusted.
package validation

import (
	"bytes"
	"io"

	"quarters/internal/shared/errors"
)

// MaxAttachmentSize caps a single uploaded photo or document.
const MaxAttachmentSize = 10 << 20 // 10 MiB

type signature struct {
	ext    string
	prefix []byte
	offset int
}

// Image formats plus PDF. Everything else is refused.
var signatures = []signature{
	{ext: "jpg", prefix: []byte{0xFF, 0xD8, 0xFF}},
	{ext: "png", prefix: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{ext: "gif", prefix: []byte("GIF87a")},
	{ext: "gif", prefix: []byte("GIF89a")},
	{ext: "pdf", prefix: []byte("%PDF-")},
	// ISO-BMFF brands sit after the 4-byte box size.
	{ext: "heic", prefix: []byte("ftypheic"), offset: 4},
	{ext: "heic", prefix: []byte("ftypheix"), offset: 4},
	{ext: "heic", prefix: []byte("ftypmif1"), offset: 4},
}

// ValidateAttachment buffers and validates an upload. It returns the full
// content and the detected extension, or a typed error: payload_too_large
// when the stream exceeds MaxAttachmentSize, unsupported_media when the
// bytes match none of the accepted formats. Nothing reaches storage until
// this has passed.
func ValidateAttachment(r io.Reader) ([]byte, string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxAttachmentSize+1))
	if err != nil {
		return nil, "", errors.NewInternalError("failed to read upload")
	}
	if len(content) > MaxAttachmentSize {
		return nil, "", errors.NewPayloadTooLargeError("attachment exceeds the 10 MiB limit")
	}
	if len(content) == 0 {
		return nil, "", errors.NewValidationError("attachment is empty")
	}

	ext, ok := DetectType(content)
	if !ok {
		return nil, "", errors.NewUnsupportedMediaError("attachment must be an image (jpeg, png, gif, webp, heic) or a PDF")
	}
	return content, ext, nil
}

// DetectType sniffs the content's format from its leading bytes.
func DetectType(content []byte) (string, bool) {
	for _, sig := range signatures {
		end := sig.offset + len(sig.prefix)
		if len(content) >= end && bytes.Equal(content[sig.offset:end], sig.prefix) {
			return sig.ext, true
		}
	}
	// RIFF container: the format tag follows the chunk size.
	if len(content) >= 12 && bytes.Equal(content[0:4], []byte("RIFF")) && bytes.Equal(content[8:12], []byte("WEBP")) {
		return "webp", true
	}
	return "", false
}
