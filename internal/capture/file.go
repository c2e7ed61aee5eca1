package capture

import (
	"fmt"
	"os"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/strix/internal/core/packet"
)

// FileSource reads frames from a pcap file. The reader is pure Go, no
// libpcap binding needed for offline captures.
type FileSource struct {
	origin *Origin
	file   *os.File
	reader *pcapgo.Reader
}

// OpenFile opens a pcap capture file as a frame source.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap file: %w", err)
	}
	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read pcap header %s: %w", path, err)
	}
	return &FileSource{
		origin: &Origin{Kind: "file", Name: path},
		file:   f,
		reader: r,
	}, nil
}

func (s *FileSource) Origin() *Origin {
	return s.origin
}

func (s *FileSource) LinkType() layers.LinkType {
	return s.reader.LinkType()
}

// ReadFrame returns the next frame in capture order. io.EOF at end of file.
func (s *FileSource) ReadFrame() (*packet.Frame, error) {
	data, ci, err := s.reader.ReadPacketData()
	if err != nil {
		return nil, err
	}
	return packet.NewFrame(ci.Timestamp, data, uint32(ci.Length)), nil
}

func (s *FileSource) Close() error {
	return s.file.Close()
}
