// Package audio converts raw PCM synthesis output into the gateway's
// wire form: a WAV container carried as base64 text.
package audio

import (
	"encoding/base64"
	"encoding/binary"
)

const wavHeaderSize = 44

// WrapPCMAsWAV prepends a 44-byte RIFF/WAVE header to raw little-endian
// PCM frames. The output depends only on the inputs, so identical frames
// always produce identical bytes.
func WrapPCMAsWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	dataSize := len(pcm)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	wav := make([]byte, wavHeaderSize+dataSize)

	copy(wav[0:4], "RIFF")
	binary.LittleEndian.PutUint32(wav[4:8], uint32(36+dataSize))
	copy(wav[8:12], "WAVE")

	copy(wav[12:16], "fmt ")
	binary.LittleEndian.PutUint32(wav[16:20], 16) // PCM subchunk size
	binary.LittleEndian.PutUint16(wav[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(wav[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(wav[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(wav[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(wav[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(wav[34:36], uint16(bitsPerSample))

	copy(wav[36:40], "data")
	binary.LittleEndian.PutUint32(wav[40:44], uint32(dataSize))
	copy(wav[44:], pcm)

	return wav
}

// EncodeBase64WAV returns the base64 wire form of synthesized audio.
// When container is set the data is already a complete WAV file and is
// encoded as-is; wrapping it again would corrupt playback.
func EncodeBase64WAV(data []byte, sampleRate, channels, bitsPerSample int, container bool) string {
	if container {
		return base64.StdEncoding.EncodeToString(data)
	}
	return base64.StdEncoding.EncodeToString(WrapPCMAsWAV(data, sampleRate, channels, bitsPerSample))
}
