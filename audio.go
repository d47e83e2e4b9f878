package tenkai

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SampleRate is the rate of the shared audio context.
const SampleRate = 44100

// fadeStep is how often a fade adjusts the volume. Steps can only run once
// per scheduler update, so the volume follows elapsed scheduler time.
const fadeStep = 10 * time.Millisecond

// fadeSlack absorbs the truncation in tick lengths such as time.Second/60.
const fadeSlack = time.Microsecond

// Player is the playback surface Audio drives. *audio.Player satisfies it.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	Position() time.Duration
	SetPosition(offset time.Duration) error
	Volume() float64
	SetVolume(volume float64)
}

// Audio is a named sound with an optional playback window and looping.
type Audio struct {
	Name string
	Path string
	// Type is the MIME type, which picks the decoder.
	Type string

	// StartTime and EndTime bound playback. A zero EndTime means the end of
	// the stream.
	StartTime time.Duration
	EndTime   time.Duration
	// Loop rewinds to StartTime on reaching EndTime instead of pausing.
	Loop bool
	// Duration is the stream length, known once attached.
	Duration time.Duration

	player Player
	sched  *Scheduler
	fade   *audioFade
}

type audioFade struct {
	tween *gween.Tween
	start time.Duration
	dur   time.Duration
	to    float64
	timer *Timer
	done  func()
}

// NewAudio creates an unloaded sound whose fades run on s (DefaultScheduler
// when nil).
func NewAudio(name, path, mime string, s *Scheduler) *Audio {
	if s == nil {
		s = DefaultScheduler()
	}
	return &Audio{Name: name, Path: path, Type: mime, sched: s}
}

// Attach connects a player of the given stream length, seeks to StartTime and
// fills in a missing EndTime.
func (a *Audio) Attach(p Player, length time.Duration) {
	a.player = p
	a.Duration = length
	if a.EndTime == 0 {
		a.EndTime = length
	}
	_ = p.SetPosition(a.StartTime)
}

// Loaded reports whether a player is attached.
func (a *Audio) Loaded() bool { return a.player != nil }

// Load decodes the sound from fsys into a player on ctx and reports the
// outcome to done on the next scheduler update.
func (a *Audio) Load(ctx *audio.Context, fsys fs.FS, done func(error)) {
	err := a.load(ctx, fsys)
	if done != nil {
		a.sched.Defer(func() { done(err) })
	}
}

func (a *Audio) load(ctx *audio.Context, fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, a.Path)
	if err != nil {
		return fmt.Errorf("load audio %s: %w", a.Name, err)
	}

	var (
		stream io.Reader
		length int64
	)
	switch a.Type {
	case "audio/wav", "audio/wave", "audio/x-wav":
		s, err := wav.DecodeF32(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode audio %s: %w", a.Name, err)
		}
		stream, length = s, s.Length()
	case "audio/mpeg", "audio/mp3":
		s, err := mp3.DecodeF32(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode audio %s: %w", a.Name, err)
		}
		stream, length = s, s.Length()
	default:
		return fmt.Errorf("%w: audio %s has unsupported type %q", ErrInvalidConfig, a.Name, a.Type)
	}

	p, err := ctx.NewPlayerF32(stream)
	if err != nil {
		return fmt.Errorf("audio player %s: %w", a.Name, err)
	}
	// 32-bit float stereo: 8 bytes per sample frame.
	frames := length / 8
	a.Attach(p, time.Duration(frames)*time.Second/time.Duration(ctx.SampleRate()))
	return nil
}

// Play starts or resumes playback.
func (a *Audio) Play() {
	if a.player != nil {
		a.player.Play()
	}
}

// PlayRange plays from start to end, looping if loop is set. Zero start or
// end keep the current bounds.
func (a *Audio) PlayRange(start, end time.Duration, loop bool) {
	if start > 0 {
		a.StartTime = start
	}
	if end > 0 {
		a.EndTime = end
	}
	a.Loop = loop
	if a.player == nil {
		return
	}
	_ = a.player.SetPosition(a.StartTime)
	a.player.Play()
}

// Pause halts playback in place.
func (a *Audio) Pause() {
	if a.player != nil {
		a.player.Pause()
	}
}

// Stop halts playback and rewinds to the beginning of the stream.
func (a *Audio) Stop() {
	a.cancelFade()
	if a.player == nil {
		return
	}
	a.player.Pause()
	_ = a.player.SetPosition(0)
}

// FadeOut lowers the volume to zero over d, pauses, then calls done.
func (a *Audio) FadeOut(d time.Duration, done func()) {
	a.fadeTo(0, d, func() {
		a.Pause()
		if done != nil {
			done()
		}
	})
}

// FadeIn starts playback at zero volume and raises it to full over d, then
// calls done.
func (a *Audio) FadeIn(d time.Duration, done func()) {
	if a.player == nil {
		return
	}
	a.player.SetVolume(0)
	a.player.Play()
	a.fadeTo(1, d, done)
}

// Fading reports whether a fade is in progress.
func (a *Audio) Fading() bool { return a.fade != nil }

func (a *Audio) fadeTo(volume float64, d time.Duration, done func()) {
	a.cancelFade()
	if a.player == nil {
		return
	}
	f := &audioFade{
		tween: gween.New(float32(a.player.Volume()), float32(volume), float32(d.Seconds()), ease.Linear),
		start: a.sched.Now(),
		dur:   max(d, 0),
		to:    volume,
		done:  done,
	}
	a.fade = f
	a.stepFade(f)
}

func (a *Audio) stepFade(f *audioFade) {
	if a.fade != f {
		return
	}
	elapsed := a.sched.Now() - f.start
	if elapsed >= f.dur-fadeSlack {
		a.player.SetVolume(f.to)
		a.fade = nil
		if f.done != nil {
			f.done()
		}
		return
	}
	v, _ := f.tween.Set(float32(elapsed.Seconds()))
	a.player.SetVolume(float64(v))
	f.timer = a.sched.AfterFunc(fadeStep, func() { a.stepFade(f) })
}

func (a *Audio) cancelFade() {
	if a.fade == nil {
		return
	}
	a.fade.timer.Stop()
	a.fade = nil
}

// Update enforces EndTime: past it, playback rewinds to StartTime when
// looping and pauses otherwise.
func (a *Audio) Update() {
	if a.player == nil || !a.player.IsPlaying() || a.EndTime <= 0 {
		return
	}
	if a.player.Position() < a.EndTime {
		return
	}
	if a.Loop {
		_ = a.player.SetPosition(a.StartTime)
		return
	}
	a.player.Pause()
}
