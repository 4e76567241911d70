package audio

import "encoding/binary"

// DownmixStereo averages interleaved 16-bit little-endian stereo frames
// into mono. A trailing partial frame is dropped.
func DownmixStereo(stereo []byte) []byte {
	const bytesPerFrame = 4 // two 16-bit channels
	numFrames := len(stereo) / bytesPerFrame

	mono := make([]byte, numFrames*2)
	for i := 0; i < numFrames; i++ {
		off := i * bytesPerFrame
		left := int16(binary.LittleEndian.Uint16(stereo[off : off+2]))
		right := int16(binary.LittleEndian.Uint16(stereo[off+2 : off+4]))
		mixed := int16((int32(left) + int32(right)) / 2)
		binary.LittleEndian.PutUint16(mono[i*2:i*2+2], uint16(mixed))
	}
	return mono
}
