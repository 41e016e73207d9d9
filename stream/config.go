package stream

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the daemon.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Frames string `yaml:"frames"`
			Events string `yaml:"events"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Strip struct {
		Pixels     int     `yaml:"pixels"`
		Background string  `yaml:"background"`
		Extent     float64 `yaml:"extent"`
	} `yaml:"strip"`
	Animation struct {
		FrameRate float64 `yaml:"frameRate"`
		Keyframes string  `yaml:"keyframes"`
		Loop      bool    `yaml:"loop"`
		Watch     bool    `yaml:"watch"`
		// CrossFade is the time in milliseconds over which the strip
		// fades to a reloaded animation. Negative disables fading.
		CrossFade int `yaml:"crossFade"`
	} `yaml:"animation"`
	Api struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
}

// ReadConfig decodes a Config and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("stream: decoding config: %w", err)
	}
	c.setDefaults()
	if c.Strip.Pixels > maxPixels {
		return c, fmt.Errorf("stream: strip.pixels %d exceeds %d", c.Strip.Pixels, maxPixels)
	}
	return c, nil
}

// maxPixels is the largest pixel count a Frame header can carry.
const maxPixels = math.MaxUint16

// ReadConfigFile reads the Config at path.
func ReadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ReadConfig(f)
}

func (c *Config) setDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "nodetx"
	}
	if c.Mqtt.Topics.Frames == "" {
		c.Mqtt.Topics.Frames = "home/xmastree/stream"
	}
	if c.Mqtt.Topics.Events == "" {
		c.Mqtt.Topics.Events = "home/xmastree/events"
	}
	if c.Strip.Pixels <= 0 {
		c.Strip.Pixels = defaultPixels
	}
	if c.Strip.Background == "" {
		c.Strip.Background = "#000005"
	}
	if c.Strip.Extent <= 0 {
		c.Strip.Extent = 10
	}
	if c.Animation.FrameRate <= 0 {
		c.Animation.FrameRate = 30
	}
	if c.Animation.CrossFade == 0 {
		c.Animation.CrossFade = 500
	}
	if c.Animation.Keyframes == "" {
		c.Animation.Keyframes = "keyframes.yaml"
	}
	if c.Api.Addr == "" {
		c.Api.Addr = ":3000"
	}
}
