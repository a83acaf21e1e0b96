package jpegcore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Marker codes relevant to baseline decoding (ISO/IEC 10918-1 Table B.1).
const (
	markerSOF0 = 0xc0 // baseline DCT
	markerSOF1 = 0xc1 // extended sequential, huffman — decoded like SOF0
	markerDHT  = 0xc4
	markerRST0 = 0xd0
	markerRST7 = 0xd7
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerSOS  = 0xda
	markerDQT  = 0xdb
	markerDRI  = 0xdd
	markerAPPn = 0xe0
)

// Config describes a JPEG image's geometry without decoding pixel data,
// mirroring the stdlib image.DecodeConfig contract the teacher's DCTEncoder
// relied on.
type Config struct {
	Width, Height    int
	NumComponents    int // 1 (gray) or 3 (YCbCr); CMYK/YCCK are rejected
	BitsPerComponent int // always 8 for baseline JPEG
}

// Image is the decoded result: Width x Height pixels of NumComponents bytes,
// already upsampled to full resolution and color-converted to RGB (or left
// as single-channel gray).
type Image struct {
	Config
	// Pix holds interleaved samples, NumComponents bytes per pixel, row
	// major, matching the layout DCTEncoder.DecodeBytes produces for the
	// PDF image XObject pipeline.
	Pix []byte
}

type component struct {
	id        byte
	h, v      int // sampling factors
	quantSel  int
	dcTableID int
	acTableID int
	dcPred    int
}

type decoder struct {
	br *bufio.Reader

	width, height int
	comps         []component
	quant         [4]*[64]uint16
	dcTables      [4]*huffTable
	acTables      [4]*huffTable
	restartInterv int
	maxH, maxV    int
	adobeTransform int // -1 unknown, 0 none, 1 YCbCr, 2 YCCK
}

// DecodeConfig reads only the JPEG headers needed to report geometry.
func DecodeConfig(r io.Reader) (Config, error) {
	d := &decoder{br: bufio.NewReader(r), adobeTransform: -1}
	if err := d.readHeaders(true); err != nil {
		return Config{}, err
	}
	nc := len(d.comps)
	if nc != 1 && nc != 3 {
		return Config{}, fmt.Errorf("jpegcore: unsupported component count %d", nc)
	}
	return Config{Width: d.width, Height: d.height, NumComponents: nc, BitsPerComponent: 8}, nil
}

// Decode fully decodes a baseline JPEG stream into an Image.
func Decode(r io.Reader) (*Image, error) {
	d := &decoder{br: bufio.NewReader(r), adobeTransform: -1}
	if err := d.readHeaders(false); err != nil {
		return nil, err
	}
	return d.decodeScan()
}

// readHeaders parses markers up to (and, unless configOnly, including) the
// scan data. When configOnly is true it stops right after SOF.
func (d *decoder) readHeaders(configOnly bool) error {
	if err := d.expectMarker(markerSOI); err != nil {
		return err
	}
	for {
		marker, err := d.nextMarker()
		if err != nil {
			return err
		}
		switch {
		case marker == markerDQT:
			if err := d.readDQT(); err != nil {
				return err
			}
		case marker == markerDHT:
			if err := d.readDHT(); err != nil {
				return err
			}
		case marker == markerDRI:
			if err := d.readDRI(); err != nil {
				return err
			}
		case marker == markerSOF0 || marker == markerSOF1:
			if err := d.readSOF(); err != nil {
				return err
			}
			if configOnly {
				return nil
			}
		case marker >= 0xc2 && marker <= 0xcf && marker != markerDHT:
			return fmt.Errorf("jpegcore: unsupported frame type 0x%02x (progressive/arithmetic/lossless not implemented)", marker)
		case marker == 0xee: // APP14 (Adobe)
			if err := d.readAPP14(); err != nil {
				return err
			}
		case marker >= markerAPPn && marker <= 0xef:
			if err := d.skipSegment(); err != nil {
				return err
			}
		case marker == 0xfe: // COM
			if err := d.skipSegment(); err != nil {
				return err
			}
		case marker == markerSOS:
			if configOnly {
				return errors.New("jpegcore: SOS before SOF")
			}
			return d.readSOSHeader()
		case marker == markerEOI:
			return errors.New("jpegcore: EOI before SOS")
		default:
			if err := d.skipSegment(); err != nil {
				return err
			}
		}
	}
}

func (d *decoder) expectMarker(want byte) error {
	m, err := d.nextMarker()
	if err != nil {
		return err
	}
	if m != want {
		return fmt.Errorf("jpegcore: expected marker 0x%02x, got 0x%02x", want, m)
	}
	return nil
}

// nextMarker scans forward (skipping fill bytes) to the next 0xff marker.
func (d *decoder) nextMarker() (byte, error) {
	for {
		c, err := d.br.ReadByte()
		if err != nil {
			return 0, err
		}
		if c != 0xff {
			continue
		}
		for {
			c2, err := d.br.ReadByte()
			if err != nil {
				return 0, err
			}
			if c2 == 0xff {
				continue
			}
			if c2 == 0x00 {
				break // stuffed byte inside entropy data we shouldn't be in; keep scanning
			}
			return c2, nil
		}
	}
}

func (d *decoder) readUint16() (int, error) {
	hi, err := d.br.ReadByte()
	if err != nil {
		return 0, err
	}
	lo, err := d.br.ReadByte()
	if err != nil {
		return 0, err
	}
	return int(hi)<<8 | int(lo), nil
}

func (d *decoder) skipSegment() error {
	n, err := d.readUint16()
	if err != nil {
		return err
	}
	_, err = io.CopyN(io.Discard, d.br, int64(n-2))
	return err
}

func (d *decoder) readAPP14() error {
	n, err := d.readUint16()
	if err != nil {
		return err
	}
	buf := make([]byte, n-2)
	if _, err := io.ReadFull(d.br, buf); err != nil {
		return err
	}
	if len(buf) >= 12 && string(buf[0:5]) == "Adobe" {
		d.adobeTransform = int(buf[11])
	}
	return nil
}

func (d *decoder) readDQT() error {
	n, err := d.readUint16()
	if err != nil {
		return err
	}
	remaining := n - 2
	for remaining > 0 {
		pq, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		precision := pq >> 4
		id := pq & 0x0f
		if id > 3 {
			return errors.New("jpegcore: invalid quantization table id")
		}
		var table [64]uint16
		if precision == 0 {
			buf := make([]byte, 64)
			if _, err := io.ReadFull(d.br, buf); err != nil {
				return err
			}
			for i, b := range buf {
				table[zigzag[i]] = uint16(b)
			}
			remaining -= 65
		} else {
			buf := make([]byte, 128)
			if _, err := io.ReadFull(d.br, buf); err != nil {
				return err
			}
			for i := 0; i < 64; i++ {
				table[zigzag[i]] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
			}
			remaining -= 129
		}
		d.quant[id] = &table
	}
	return nil
}

func (d *decoder) readDHT() error {
	n, err := d.readUint16()
	if err != nil {
		return err
	}
	remaining := n - 2
	for remaining > 0 {
		tc, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		class := tc >> 4 // 0 = DC, 1 = AC
		id := tc & 0x0f
		if id > 3 {
			return errors.New("jpegcore: invalid huffman table id")
		}
		var counts [16]int
		countBuf := make([]byte, 16)
		if _, err := io.ReadFull(d.br, countBuf); err != nil {
			return err
		}
		total := 0
		for i, c := range countBuf {
			counts[i] = int(c)
			total += int(c)
		}
		symbols := make([]byte, total)
		if _, err := io.ReadFull(d.br, symbols); err != nil {
			return err
		}
		table := newHuffTable(counts, symbols)
		if class == 0 {
			d.dcTables[id] = table
		} else {
			d.acTables[id] = table
		}
		remaining -= 17 + total
	}
	return nil
}

func (d *decoder) readDRI() error {
	if _, err := d.readUint16(); err != nil {
		return err
	}
	ri, err := d.readUint16()
	if err != nil {
		return err
	}
	d.restartInterv = ri
	return nil
}

func (d *decoder) readSOF() error {
	if _, err := d.readUint16(); err != nil {
		return err
	}
	precision, err := d.br.ReadByte()
	if err != nil {
		return err
	}
	if precision != 8 {
		return fmt.Errorf("jpegcore: unsupported sample precision %d", precision)
	}
	h, err := d.readUint16()
	if err != nil {
		return err
	}
	w, err := d.readUint16()
	if err != nil {
		return err
	}
	d.height, d.width = h, w
	nc, err := d.br.ReadByte()
	if err != nil {
		return err
	}
	d.comps = make([]component, nc)
	for i := range d.comps {
		id, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		hv, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		qsel, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		d.comps[i] = component{id: id, h: int(hv >> 4), v: int(hv & 0x0f), quantSel: int(qsel)}
		if d.comps[i].h > d.maxH {
			d.maxH = d.comps[i].h
		}
		if d.comps[i].v > d.maxV {
			d.maxV = d.comps[i].v
		}
	}
	return nil
}

func (d *decoder) readSOSHeader() error {
	if _, err := d.readUint16(); err != nil {
		return err
	}
	ns, err := d.br.ReadByte()
	if err != nil {
		return err
	}
	for i := 0; i < int(ns); i++ {
		cs, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		tables, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		for ci := range d.comps {
			if d.comps[ci].id == cs {
				d.comps[ci].dcTableID = int(tables >> 4)
				d.comps[ci].acTableID = int(tables & 0x0f)
			}
		}
	}
	// Ss, Se, Ah/Al: fixed at 0, 63, 0 for baseline; read and discard.
	skip := make([]byte, 3)
	_, err = io.ReadFull(d.br, skip)
	return err
}
