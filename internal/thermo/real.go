package thermo

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// RealSampler reads a MAX6675 over SPI. Reads are rate-limited to
// MinRefresh; between bus reads the last value is reused.
type RealSampler struct {
	port spi.PortCloser
	conn spi.Conn

	last     float64
	lastRead time.Time
}

// NewRealSampler opens the given SPI port (empty string selects the first
// registered port) and configures it for the MAX6675: mode 0, 8-bit words,
// 4MHz. periph's host drivers must already be initialized.
func NewRealSampler(portName string) (*RealSampler, error) {
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}

	conn, err := port.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("configure spi: %w", err)
	}

	return &RealSampler{port: port, conn: conn}, nil
}

// Sample returns the cavity temperature in Celsius. If less than MinRefresh
// has passed since the last bus read, the previous value is returned
// without touching the bus — this bounds blocking bus time per control tick.
func (s *RealSampler) Sample(now time.Time) (float64, error) {
	if !s.lastRead.IsZero() && now.Sub(s.lastRead) < MinRefresh {
		return s.last, nil
	}

	var buf [2]byte
	if err := s.conn.Tx([]byte{0, 0}, buf[:]); err != nil {
		return s.last, fmt.Errorf("spi read: %w", err)
	}
	s.lastRead = now

	raw := uint16(buf[0])<<8 | uint16(buf[1])
	c, err := Decode(raw)
	if err != nil {
		return s.last, err
	}

	s.last = c
	return c, nil
}

// Close releases the SPI port.
func (s *RealSampler) Close() error {
	return s.port.Close()
}
