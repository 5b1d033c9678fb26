// Package replay records the per-step input of a run and plays it back as
// an input source. Files are zstd-compressed JSONL: one header line, then
// one line per executed step.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"skyring/internal/input"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const Version = 1

var ErrBadHeader = errors.New("replay header missing or unsupported")

type Header struct {
	Version    int       `json:"version"`
	RunID      string    `json:"run_id"`
	Created    time.Time `json:"created"`
	TickRateHz int       `json:"tick_rate_hz"`
	Area       string    `json:"area"`
	Mission    string    `json:"mission"`
}

type Frame struct {
	Step  uint64         `json:"step"`
	Input input.Snapshot `json:"input"`
}

type Recorder struct {
	header Header
	path   string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	frames int
}

// Create opens a new recording in dir. The run id is generated when the
// header carries none.
func Create(dir string, h Header) (*Recorder, error) {
	if h.RunID == "" {
		h.RunID = uuid.NewString()
	}
	if h.Created.IsZero() {
		h.Created = time.Now().UTC()
	}
	h.Version = Version

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay dir: %w", err)
	}
	path := filepath.Join(dir, h.RunID+".jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r := &Recorder{header: h, path: path, f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if err := r.writeLine(h); err != nil {
		_ = r.Close()
		return nil, err
	}
	log.Printf("Replay: recording run %s to %s", h.RunID, path)
	return r, nil
}

func (r *Recorder) Header() Header { return r.header }

func (r *Recorder) Path() string { return r.path }

func (r *Recorder) Frames() int { return r.frames }

// Record appends the input used for step.
func (r *Recorder) Record(step uint64, in input.Snapshot) error {
	if err := r.writeLine(Frame{Step: step, Input: in}); err != nil {
		return err
	}
	r.frames++
	return nil
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

func (r *Recorder) Close() error {
	var err error
	if r.w != nil {
		err = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		if cerr := r.enc.Close(); err == nil {
			err = cerr
		}
		r.enc = nil
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}

// Player replays a recording. It satisfies input.Source and reports
// input.ErrQuit once the frames run out.
type Player struct {
	header Header
	frames []Frame
	next   int
}

func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Player, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	p := &Player{}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrBadHeader
	}
	if err := json.Unmarshal(sc.Bytes(), &p.header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if p.header.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, p.header.Version)
	}

	for sc.Scan() {
		var fr Frame
		if err := json.Unmarshal(sc.Bytes(), &fr); err != nil {
			return nil, fmt.Errorf("replay frame %d: %w", len(p.frames), err)
		}
		p.frames = append(p.frames, fr)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) Header() Header { return p.header }

func (p *Player) Len() int { return len(p.frames) }

func (p *Player) Sample() (input.Snapshot, error) {
	if p.next >= len(p.frames) {
		return input.Snapshot{}, input.ErrQuit
	}
	fr := p.frames[p.next]
	p.next++
	return fr.Input, nil
}
