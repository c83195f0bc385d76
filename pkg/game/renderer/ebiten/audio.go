package ebiten

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Restart plays src from the beginning. A cue that cannot be decoded is logged once
// and ignored afterwards.
func (e *EbitenRenderer) Restart(src string) {
	if src == "" || e.audioContext == nil {
		return
	}
	p := e.player(src)
	if p == nil {
		return
	}
	p.Pause()
	if err := p.SetPosition(0); err != nil {
		log.Printf("Sound %q: rewind failed: %v", src, err)
		return
	}
	p.Play()
}

func (e *EbitenRenderer) player(src string) *audio.Player {
	e.playersMutex.Lock()
	defer e.playersMutex.Unlock()

	if p, ok := e.players[src]; ok {
		return p
	}

	p, err := e.loadPlayer(src)
	if err != nil {
		log.Printf("Sound %q unavailable: %v", src, err)
		p = nil
	}
	e.players[src] = p
	return p
}

func (e *EbitenRenderer) loadPlayer(src string) (*audio.Player, error) {
	data, err := fs.ReadFile(e.assets, src)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	switch strings.ToLower(path.Ext(src)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format %q", path.Ext(src))
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return e.audioContext.NewPlayer(stream)
}
