package plugin

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/effects"
	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

// DelayName is the registry name of the ping-pong delay.
const DelayName = "delay"

// Delay control names and factory values.
const (
	DelayMix      = "Mix"
	DelayTime     = "Time"
	DelayFeedback = "Feedback"

	defaultDelayMix      = 0.3
	defaultDelayTime     = 0.5
	defaultDelayFeedback = 0.3

	delayControlMin = 0.01
	delayStateTag   = "Delay"
)

// ErrBadState is returned when persisted state cannot be parsed.
var ErrBadState = errors.New("plugin: malformed state")

// Delay is the ping-pong delay effect.
type Delay struct {
	engine     *effects.PingPongDelay
	params     *param.Set
	mix        *param.Param
	time       *param.Param
	feedback   *param.Param
	sampleRate float64
}

// NewDelay builds a delay with factory controls. Engine options pass
// through unchanged.
func NewDelay(opts ...effects.DelayOption) (*Delay, error) {
	engine, err := effects.NewPingPongDelay(opts...)
	if err != nil {
		return nil, err
	}
	d := &Delay{
		engine:     engine,
		mix:        param.New(DelayMix, defaultDelayMix, delayControlMin, 1),
		time:       param.New(DelayTime, defaultDelayTime, delayControlMin, 1),
		feedback:   param.New(DelayFeedback, defaultDelayFeedback, delayControlMin, 1),
		sampleRate: core.DefaultProcessorConfig().SampleRate,
	}
	d.params = param.NewSet(d.mix, d.time, d.feedback)
	return d, nil
}

// Name implements Effect.
func (d *Delay) Name() string { return DelayName }

// Params implements Effect.
func (d *Delay) Params() *param.Set { return d.params }

// Prepare implements Effect. The delay is rate independent; the rate only
// feeds TailSeconds.
func (d *Delay) Prepare(sampleRate float64, blockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("plugin: delay: %w", err)
	}
	d.sampleRate = sampleRate
	d.engine.Prime(d.time.Get())
	return nil
}

// ProcessBlock implements Effect.
func (d *Delay) ProcessBlock(left, right []float32) {
	d.engine.ProcessBlock(left, right, d.mix.Get(), d.time.Get(), d.feedback.Get())
}

// Reset implements Effect.
func (d *Delay) Reset() { d.engine.Reset() }

// TailSeconds implements Effect: one echo at the current time setting.
func (d *Delay) TailSeconds() float64 {
	return float64(d.engine.Time()) * float64(d.engine.Capacity()) / d.sampleRate
}

type delayState struct {
	XMLName  xml.Name `xml:"Delay"`
	Mix      string   `xml:"Mix,attr"`
	Time     string   `xml:"Time,attr"`
	Feedback string   `xml:"Feedback,attr"`
}

// State implements Stater. The record is a single <Delay> element with the
// three controls as attributes.
func (d *Delay) State() ([]byte, error) {
	s := delayState{
		Mix:      formatControl(d.mix.Get()),
		Time:     formatControl(d.time.Get()),
		Feedback: formatControl(d.feedback.Get()),
	}
	out, err := xml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("plugin: delay state: %w", err)
	}
	return out, nil
}

// SetState implements Stater. A record with a different root element is
// ignored. Missing or unparsable attributes restore the factory value.
func (d *Delay) SetState(data []byte) error {
	var root struct {
		XMLName xml.Name
		Attrs   []xml.Attr `xml:",any,attr"`
	}
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return fmt.Errorf("%w: %w", ErrBadState, err)
	}
	if root.XMLName.Local != delayStateTag {
		return nil
	}

	values := map[string]float32{
		DelayMix:      defaultDelayMix,
		DelayTime:     defaultDelayTime,
		DelayFeedback: defaultDelayFeedback,
	}
	for _, a := range root.Attrs {
		if _, known := values[a.Name.Local]; !known {
			continue
		}
		if v, err := strconv.ParseFloat(a.Value, 32); err == nil {
			values[a.Name.Local] = float32(v)
		}
	}

	d.mix.Set(values[DelayMix])
	d.time.Set(values[DelayTime])
	d.feedback.Set(values[DelayFeedback])
	return nil
}

func formatControl(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
