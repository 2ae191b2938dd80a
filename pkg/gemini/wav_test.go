package gemini

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	wav := EncodeWAV(pcm, TTSSampleRate)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("WAV全長 = %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("RIFF/WAVE マジックが正しくない")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("RIFFチャンクサイズ = %d, want %d", got, 36+len(pcm))
	}
	if string(wav[12:16]) != "fmt " {
		t.Error("fmt サブチャンクがない")
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("音声形式 = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("チャンネル数 = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != TTSSampleRate {
		t.Errorf("サンプルレート = %d, want %d", got, TTSSampleRate)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != TTSSampleRate*2 {
		t.Errorf("バイトレート = %d, want %d", got, TTSSampleRate*2)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Errorf("ブロックアライン = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("ビット深度 = %d, want 16", got)
	}
	if string(wav[36:40]) != "data" {
		t.Error("data サブチャンクがない")
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("dataサイズ = %d, want %d", got, len(pcm))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Error("PCMペイロードが一致しない")
	}
}
