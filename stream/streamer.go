package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/nodetx/anim"
	"github.com/matt-g-everett/nodetx/scene"
)

// Publisher is the part of mqtt.Client a Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer streams frames of a node to an ledrx device and forwards
// player events. It is the scene.Renderer of the animated node.
type Streamer struct {
	client    Publisher
	config    Config
	node      *scene.Node
	painter   *Painter
	frameRate float64

	mu                  sync.Mutex
	last                *Frame
	fadeFrom            *Frame
	transition          float64
	transitionIncrement float64
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Publisher, node *scene.Node, painter *Painter) *Streamer {
	s := new(Streamer)
	s.client = client
	s.config = config
	s.node = node
	s.painter = painter
	s.frameRate = config.Animation.FrameRate
	if s.frameRate <= 0 {
		s.frameRate = 30
	}
	if fade := config.Animation.CrossFade; fade > 0 {
		s.transitionIncrement = 1.0 / (s.frameRate * float64(fade) / 1000)
	}
	return s
}

// CrossFade blends the frames that follow from the last frame sent,
// over the configured cross-fade time.
func (s *Streamer) CrossFade() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transitionIncrement <= 0 || s.last == nil {
		return
	}
	s.fadeFrom = s.last
	s.transition = 0.0
}

// nextFrame paints the node, blended with the frame being faded out.
func (s *Streamer) nextFrame() *Frame {
	f := s.painter.Paint(s.node.Transform())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fadeFrom != nil {
		f = s.fadeFrom.InterpolateFrame(f, s.transition)
		s.transition += s.transitionIncrement
		if s.transition >= 1.0 {
			s.fadeFrom = nil
			s.transition = 0.0
		}
	}
	s.last = f
	return f
}

// SendFrame sends the node's current frame as binary over MQTT.
func (s *Streamer) SendFrame() error {
	f := s.nextFrame()
	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.config.Mqtt.Topics.Frames, 2, false, b)
	token.Wait()
	return token.Error()
}

// Render sends a frame immediately.
func (s *Streamer) Render() {
	if err := s.SendFrame(); err != nil {
		log.Printf("Failed to send frame: %v", err)
	}
}

// PublishEvent sends a player event as JSON over MQTT.
func (s *Streamer) PublishEvent(ev anim.Event) error {
	b, err := json.Marshal(NewEventMessage(ev))
	if err != nil {
		return err
	}
	token := s.client.Publish(s.config.Mqtt.Topics.Events, 0, false, b)
	token.Wait()
	return token.Error()
}

// Attach forwards the events of p until the returned function is called.
func (s *Streamer) Attach(p *anim.Player) (detach func()) {
	forward := func(ev anim.Event) {
		if err := s.PublishEvent(ev); err != nil {
			log.Printf("Failed to publish %v event: %v", ev.Type, err)
		}
	}
	removeStart := p.AddEventListener(anim.Start, forward)
	removeUpdate := p.AddEventListener(anim.Update, forward)
	return func() {
		removeStart()
		removeUpdate()
	}
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(time.Duration(float64(time.Second) / s.frameRate))
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-publishTimer.C:
			s.Render()
		}
	}
}
