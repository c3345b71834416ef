package ottables

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/npillmayer/otcodec/ot"
)

// TextEncoding converts between Go strings and the bytes of a name record.
// Neither direction fails: characters which cannot be encoded and bytes which
// cannot be decoded are substituted.
type TextEncoding interface {
	Encode(s string) []byte
	Decode(b []byte) string
	String() string
}

var utf16BE = textEncoding{
	name: "UTF-16BE",
	enc:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// EncodingFor selects the text encoding for a platform id and a platform specific
// encoding id.
//
// Macintosh encodings other than Cyrillic are treated as Mac Roman. This is
// wrong for e.g. Japanese or Arabic Mac strings, but these are rare in
// contemporary fonts.
func EncodingFor(platform PlatformID, enc EncodingID) (TextEncoding, error) {
	switch platform {
	case PlatformUnicode:
		return utf16BE, nil
	case PlatformMacintosh:
		if enc == EncodingMacCyrillic {
			return textEncoding{name: "MacCyrillic", enc: charmap.MacintoshCyrillic}, nil
		}
		return textEncoding{name: "MacRoman", enc: charmap.Macintosh}, nil
	case PlatformISO:
		switch enc {
		case 0, 2:
			return textEncoding{name: "Windows-1252", enc: charmap.Windows1252}, nil
		case 1:
			return utf16BE, nil
		}
	case PlatformWindows:
		switch enc {
		case 0, 1:
			return utf16BE, nil
		case 2:
			return textEncoding{name: "Shift-JIS", enc: japanese.ShiftJIS}, nil
		case 3:
			return textEncoding{name: "GBK", enc: simplifiedchinese.GBK}, nil
		case 4:
			return textEncoding{name: "Big5", enc: traditionalchinese.Big5}, nil
		case 5:
			return textEncoding{name: "Windows-949", enc: korean.EUCKR}, nil
		case 6:
			// Johab
		default:
			return utf16BE, nil
		}
	}
	return nil, ot.Errorf(ot.ErrUnsupportedEncoding, "name",
		"platform %d (%s), encoding %d", platform, platform, enc)
}

type textEncoding struct {
	name string
	enc  encoding.Encoding
}

func (te textEncoding) String() string {
	return te.name
}

func (te textEncoding) Encode(s string) []byte {
	enc := encoding.ReplaceUnsupported(te.enc.NewEncoder())
	b, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		tracer().Infof("encoding %q as %s: %v", s, te.name, err)
	}
	return b
}

func (te textEncoding) Decode(b []byte) string {
	s, n, err := transform.Bytes(te.enc.NewDecoder(), b)
	if err != nil {
		tracer().Infof("decoding %d bytes as %s stopped at byte %d: %v", len(b), te.name, n, err)
		return string(s) + "\uFFFD"
	}
	return string(s)
}
