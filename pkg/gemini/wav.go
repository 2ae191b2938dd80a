package gemini

import (
	"bytes"
	"encoding/binary"
)

// TTSSampleRate はリモートTTSが返す生PCMのサンプルレートです。
const TTSSampleRate = 24000

// EncodeWAV は生のPCMサンプル（モノラル・16bit・リトルエンディアン）を
// RIFF/WAVE コンテナに包みます。リモートTTSは圧縮なしのサンプル列しか
// 返さないため、再生可能なアセットにするにはこの自己記述ヘッダが必須です。
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	blockAlign := numChannels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))

	// RIFF チャンク
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	// fmt サブチャンク (PCM)
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	// data サブチャンク
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
