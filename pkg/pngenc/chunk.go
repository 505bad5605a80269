package pngenc

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	bitDepth8      = 8
	colorTypeRGB   = 2
	idatBufferSize = 1 << 16
)

// writeChunk writes one length-type-data-CRC chunk.
func writeChunk(w io.Writer, typ string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], typ)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := w.Write(footer[:])
	return err
}

func writeHeader(w io.Writer, width, height uint32) error {
	if _, err := w.Write(pngSignature); err != nil {
		return err
	}
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = bitDepth8
	ihdr[9] = colorTypeRGB
	ihdr[10] = 0 // deflate
	ihdr[11] = 0 // adaptive filtering
	ihdr[12] = 0 // no interlace
	return writeChunk(w, "IHDR", ihdr[:])
}

// idatWriter turns every Write into one IDAT chunk.
type idatWriter struct {
	w io.Writer
}

func (iw idatWriter) Write(p []byte) (int, error) {
	if err := writeChunk(iw.w, "IDAT", p); err != nil {
		return 0, err
	}
	return len(p), nil
}
