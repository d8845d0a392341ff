package marker

import "strings"

// Lead is the first byte of every marker code.
const Lead byte = 0xFF

// Suffixes referenced by callers and tests.
const (
	SOI byte = 0xD8
	EOI byte = 0xD9
	SOS byte = 0xDA
	COM byte = 0xFE
	RES byte = 0x02
)

const (
	UnknownSymbol      = "UNK"
	UnknownDescription = "Unknown marker"
)

// Descriptor names one marker suffix.
type Descriptor struct {
	Suffix      byte
	Symbol      string
	Description string
}

// Code returns the two-byte marker code.
func (d Descriptor) Code() [2]byte {
	return [2]byte{Lead, d.Suffix}
}

// IsUnknown reports whether d is an unknown-marker fallback.
func (d Descriptor) IsUnknown() bool {
	return d.Symbol == UnknownSymbol
}

// Table B.1 of ITU-T T.81. Reserved codes run from 0xFF02 to 0xFFBF; only
// 0x02 is listed.
var table = []Descriptor{
	{0xC0, "SOF0", "non-differential, Huffman coding - Baseline DCT"},
	{0xC1, "SOF1", "non-differential, Huffman coding - Extended sequential DCT"},
	{0xC2, "SOF2", "non-differential, Huffman coding - Progressive DCT"},
	{0xC3, "SOF3", "non-differential, Huffman coding - Lossless (sequential)"},
	{0xC5, "SOF5", "differential, Huffman coding - Differential sequential DCT"},
	{0xC6, "SOF6", "differential, Huffman coding - Differential progressive DCT"},
	{0xC7, "SOF7", "differential, Huffman coding - Differential lossless (sequential)"},
	{0xC8, "JPG", "non-differential, arithmetic coding - Reserved for JPEG extensions"},
	{0xC9, "SOF9", "non-differential, arithmetic coding - Extended sequential DCT"},
	{0xCA, "SOF10", "non-differential, arithmetic coding - Progressive DCT"},
	{0xCB, "SOF11", "non-differential, arithmetic coding - Lossless (sequential)"},
	{0xCD, "SOF13", "differential, arithmetic coding - Differential sequential DCT"},
	{0xCE, "SOF14", "differential, arithmetic coding - Differential progressive DCT"},
	{0xCF, "SOF15", "differential, arithmetic coding - Differential lossless (sequential)"},
	{0xC4, "DHT", "Huffman table specification - Define Huffman table(s)"},
	{0xCC, "DAC", "Arithmetic coding conditioning specification - Define arithmetic coding conditioning(s)"},
	{0xD0, "RST0", "Restart interval termination - Restart with modulo count 0"},
	{0xD1, "RST1", "Restart interval termination - Restart with modulo count 1"},
	{0xD2, "RST2", "Restart interval termination - Restart with modulo count 2"},
	{0xD3, "RST3", "Restart interval termination - Restart with modulo count 3"},
	{0xD4, "RST4", "Restart interval termination - Restart with modulo count 4"},
	{0xD5, "RST5", "Restart interval termination - Restart with modulo count 5"},
	{0xD6, "RST6", "Restart interval termination - Restart with modulo count 6"},
	{0xD7, "RST7", "Restart interval termination - Restart with modulo count 7"},
	{0xD8, "SOI", "Start of image"},
	{0xD9, "EOI", "End of image"},
	{0xDA, "SOS", "Start of scan"},
	{0xDB, "DQT", "Define quantization table(s)"},
	{0xDC, "DNL", "Define number of lines"},
	{0xDD, "DRI", "Define restart interval"},
	{0xDE, "DHP", "Define hierarchical progression"},
	{0xDF, "EXP", "Expand reference component(s)"},
	{0xE0, "APP0", "Reserved for application segments"},
	{0xE1, "APP1", "Reserved for application segments"},
	{0xE2, "APP2", "Reserved for application segments"},
	{0xE3, "APP3", "Reserved for application segments"},
	{0xE4, "APP4", "Reserved for application segments"},
	{0xE5, "APP5", "Reserved for application segments"},
	{0xE6, "APP6", "Reserved for application segments"},
	{0xE7, "APP7", "Reserved for application segments"},
	{0xE8, "APP8", "Reserved for application segments"},
	{0xE9, "APP9", "Reserved for application segments"},
	{0xEA, "APP10", "Reserved for application segments"},
	{0xEB, "APP11", "Reserved for application segments"},
	{0xEC, "APP12", "Reserved for application segments"},
	{0xED, "APP13", "Reserved for application segments"},
	{0xEE, "APP14", "Reserved for application segments"},
	{0xEF, "APP15", "Reserved for application segments"},
	{0xF0, "JPG0", "Reserved for JPEG extensions"},
	{0xF1, "JPG1", "Reserved for JPEG extensions"},
	{0xF2, "JPG2", "Reserved for JPEG extensions"},
	{0xF3, "JPG3", "Reserved for JPEG extensions"},
	{0xF4, "JPG4", "Reserved for JPEG extensions"},
	{0xF5, "JPG5", "Reserved for JPEG extensions"},
	{0xF6, "JPG6", "Reserved for JPEG extensions"},
	{0xF7, "JPG7", "Reserved for JPEG extensions"},
	{0xF8, "JPG8", "Reserved for JPEG extensions"},
	{0xF9, "JPG9", "Reserved for JPEG extensions"},
	{0xFA, "JPG10", "Reserved for JPEG extensions"},
	{0xFB, "JPG11", "Reserved for JPEG extensions"},
	{0xFC, "JPG12", "Reserved for JPEG extensions"},
	{0xFD, "JPG13", "Reserved for JPEG extensions"},
	{0xFE, "COM", "Comment"},
	{0x01, "TEM", "For temporary private use in arithmetic coding"},
	{0x02, "RES", "Reserved"},
}

var (
	bySuffix [256]*Descriptor
	bySymbol = make(map[string]*Descriptor, len(table))
)

func init() {
	for i := range table {
		d := &table[i]
		bySuffix[d.Suffix] = d
		bySymbol[d.Symbol] = d
	}
}

// Lookup returns the registered descriptor for suffix.
func Lookup(suffix byte) (Descriptor, bool) {
	d := bySuffix[suffix]
	if d == nil {
		return Descriptor{}, false
	}
	return *d, true
}

// Unknown builds the fallback descriptor for an unregistered suffix.
func Unknown(suffix byte) Descriptor {
	return Descriptor{Suffix: suffix, Symbol: UnknownSymbol, Description: UnknownDescription}
}

// Resolve returns the registered descriptor or the unknown fallback.
func Resolve(suffix byte) Descriptor {
	if d, ok := Lookup(suffix); ok {
		return d
	}
	return Unknown(suffix)
}

// LookupSymbol finds a descriptor by symbol, case-insensitively.
func LookupSymbol(symbol string) (Descriptor, bool) {
	d, ok := bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// All returns a copy of the registry in table order.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}
