// Package assets loads textures and music off the game loop. Systems poll a
// path until it reports Loaded or Failed.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SampleRate is the rate music is decoded to. The audio context must use
// the same rate.
const SampleRate = 44100

const maxDecoders = 4

type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

type entry struct {
	state   LoadState
	decoded image.Image
	image   *ebiten.Image
	pcm     []byte
	err     error
}

// Loader decodes assets from fs on background goroutines. Requests beyond
// the decoder limit stay NotLoaded and are retried on the next poll.
type Loader struct {
	fs     afero.Fs
	logger *zap.Logger
	group  errgroup.Group

	mu     sync.Mutex
	images map[string]*entry
	music  map[string]*entry
}

func NewLoader(fs afero.Fs, logger *zap.Logger) *Loader {
	l := &Loader{
		fs:     fs,
		logger: logger.Named("asset_loader"),
		images: make(map[string]*entry),
		music:  make(map[string]*entry),
	}
	l.group.SetLimit(maxDecoders)
	return l
}

// LoadImage starts decoding the image at path if needed and returns its
// current state.
func (l *Loader) LoadImage(path string) LoadState {
	return l.load(l.images, path, func(e *entry, data []byte) error {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		e.decoded = img
		return nil
	})
}

// LoadMusic starts decoding the track at path to PCM if needed and returns
// its current state. Supported formats are .ogg and .wav.
func (l *Loader) LoadMusic(path string) LoadState {
	return l.load(l.music, path, func(e *entry, data []byte) error {
		pcm, err := decodeAudio(path, data)
		if err != nil {
			return err
		}
		e.pcm = pcm
		return nil
	})
}

func (l *Loader) load(table map[string]*entry, path string, decode func(*entry, []byte) error) LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := table[path]
	if ok && e.state != NotLoaded {
		return e.state
	}
	if !ok {
		e = &entry{}
		table[path] = e
	}

	started := l.group.TryGo(func() error {
		var decoded entry
		data, err := afero.ReadFile(l.fs, path)
		if err == nil {
			err = decode(&decoded, data)
		}
		if err == nil {
			l.mu.Lock()
			e.decoded, e.pcm, e.state = decoded.decoded, decoded.pcm, Loaded
			l.mu.Unlock()
			return nil
		}

		l.logger.Warn("Failed to load asset", zap.String("path", path), zap.Error(err))
		l.mu.Lock()
		e.err, e.state = err, Failed
		l.mu.Unlock()
		return nil
	})
	if started {
		e.state = Loading
	}
	return e.state
}

// State returns the state of an image or track without starting a load.
func (l *Loader) State(path string) LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.images[path]; ok {
		return e.state
	}
	if e, ok := l.music[path]; ok {
		return e.state
	}
	return NotLoaded
}

// Image returns the loaded image at path. The GPU image is created on first
// use, so Image must be called from the game loop.
func (l *Loader) Image(path string) (*ebiten.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.images[path]
	if !ok || e.state != Loaded {
		return nil, notLoaded(path, e)
	}
	if e.image == nil {
		e.image = ebiten.NewImageFromImage(e.decoded)
	}
	return e.image, nil
}

// Music returns the decoded PCM of a loaded track.
func (l *Loader) Music(path string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.music[path]
	if !ok || e.state != Loaded {
		return nil, notLoaded(path, e)
	}
	return e.pcm, nil
}

// Wait blocks until every started load has finished.
func (l *Loader) Wait() {
	_ = l.group.Wait()
}

func notLoaded(path string, e *entry) error {
	if e != nil && e.err != nil {
		return fmt.Errorf("load %s: %w", path, e.err)
	}
	return fmt.Errorf("asset %s is not loaded", path)
}

func decodeAudio(path string, data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(SampleRate, reader)
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(SampleRate, reader)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return io.ReadAll(stream)
}
