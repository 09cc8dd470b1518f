package probe

import "github.com/backmassage/mkv2mp4/internal/inventory"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename       string
	NbStreams      int
	FormatName     string
	FormatLongName string
	Duration       float64
	Size           int64
	BitRate        int64
	Tags           map[string]string
}

// Stream holds the parsed properties of a single stream.
type Stream struct {
	Index     int
	CodecType string
	Codec     string
	Language  string
	Title     string
	IsDefault bool
}

// ProbeResult is the fully parsed output of a single ffprobe JSON call.
type ProbeResult struct {
	Format  FormatInfo
	Streams []Stream
}

// Records converts the streams to inventory records in index order.
func (p *ProbeResult) Records() []inventory.Record {
	records := make([]inventory.Record, 0, len(p.Streams))
	for _, s := range p.Streams {
		records = append(records, inventory.Record{CodecType: s.CodecType, CodecName: s.Codec})
	}
	return records
}
