package transcript

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const sampleChat = `2026년 2월 2일 월요일
2026. 2. 2. 09:00, 94김용진 : 사진 3장
2026. 2. 3. 10:00, 94김용진 : 사진 2장
`

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractUTF8(t *testing.T) {
	data := buildZip(t, map[string][]byte{"Talk_Chat.txt": []byte(sampleChat)})

	text, ok, err := Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !ok {
		t.Fatal("expected transcript to be found")
	}
	if text != sampleChat {
		t.Errorf("text = %q, want %q", text, sampleChat)
	}
}

func TestExtractEUCKR(t *testing.T) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(sampleChat))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	data := buildZip(t, map[string][]byte{"Talk_Chat.txt": encoded})

	text, ok, err := Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !ok {
		t.Fatal("expected transcript to be found")
	}
	if text != sampleChat {
		t.Errorf("decoded text differs from original")
	}
}

// Photo totals must not depend on which supported encoding the export
// used.
func TestExtractEncodingRoundTrip(t *testing.T) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(sampleChat))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	var totals []map[string]int
	for _, raw := range [][]byte{[]byte(sampleChat), encoded} {
		data := buildZip(t, map[string][]byte{"chat.txt": raw})
		text, ok, err := Extract(data)
		if err != nil || !ok {
			t.Fatalf("extract: ok=%v err=%v", ok, err)
		}
		counts, err := Parse(text, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		totals = append(totals, counts)
	}

	if totals[0]["94김용진"] != 5 || totals[1]["94김용진"] != 5 {
		t.Errorf("totals differ across encodings: %v vs %v", totals[0], totals[1])
	}
}

// A transcript that decodes under no supported encoding is "nothing to
// settle", not mojibake to run a settlement over.
func TestExtractUndecodableTranscript(t *testing.T) {
	// 0xFF is an invalid lead byte in both UTF-8 and EUC-KR.
	garbage := []byte{0xFF, 0xFE, 0xFF, 0x00, 0xFF}
	data := buildZip(t, map[string][]byte{"Talk_Chat.txt": garbage})

	text, ok, err := Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if ok || text != "" {
		t.Errorf("expected no data to settle, got ok=%v text=%q", ok, text)
	}
}

func TestExtractNoTranscript(t *testing.T) {
	data := buildZip(t, map[string][]byte{"readme.md": []byte("hi")})

	text, ok, err := Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if ok || text != "" {
		t.Errorf("expected not-found, got ok=%v text=%q", ok, text)
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	_, _, err := Extract([]byte("this is not a zip"))
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}
