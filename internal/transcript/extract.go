// Package transcript turns an exported group-chat archive into
// per-identity photo counts. Extraction and parsing are pure with
// respect to the record store; callers decide what to do with the
// counts.
package transcript

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Extract locates the single .txt transcript inside a zipped chat
// export and decodes it, trying UTF-8 first and falling back to
// EUC-KR/CP949 (older exports). A missing transcript or an undecodable
// file returns ok=false — "nothing to settle", not an error. Only a
// corrupt archive is an error.
func Extract(zipData []byte) (text string, ok bool, err error) {
	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return "", false, fmt.Errorf("open chat archive: %w", err)
	}

	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".txt") || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", false, fmt.Errorf("open %s in archive: %w", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", false, fmt.Errorf("read %s in archive: %w", f.Name, err)
		}
		if decoded, ok := decode(raw); ok {
			return decoded, true, nil
		}
		return "", false, nil
	}
	return "", false, nil
}

// decode attempts the supported transcript encodings in order. The
// EUC-KR decoder never errors on bad input; it substitutes U+FFFD per
// invalid byte, so replacement runes in the output mean the bytes were
// not EUC-KR either.
func decode(raw []byte) (string, bool) {
	if utf8.Valid(raw) {
		return string(raw), true
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", false
	}
	return string(decoded), true
}
