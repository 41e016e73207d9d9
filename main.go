package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/nodetx/anim"
	"github.com/matt-g-everett/nodetx/api"
	"github.com/matt-g-everett/nodetx/scene"
	"github.com/matt-g-everett/nodetx/stream"
	"github.com/matt-g-everett/nodetx/tween"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Node       *scene.Node
	Streamer   *stream.Streamer
	Player     *anim.Player
	Controller *stream.Controller
	Api        *api.Api
}

func newApp() *app {
	a := new(app)
	a.Node = scene.NewNode("tree")
	return a
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfigFile(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) build() {
	painter, err := stream.NewPainterFromConfig(a.Config)
	if err != nil {
		panic(err)
	}
	a.Streamer = stream.NewStreamer(a.Config, a.Client, a.Node, painter)

	engine := tween.NewEngine(a.Config.Animation.FrameRate)
	a.Player = anim.NewPlayer(a.Streamer, a.Node, engine)
	a.Streamer.Attach(a.Player)

	a.Controller = stream.NewController(a.Player, a.Config.Animation.Keyframes, a.Config.Animation.Loop)
	a.Controller.SetFader(a.Streamer)
	a.Api = api.NewApi(a.Config.Api.Addr, a.Controller)
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)
	log.Println("Connected")

	var reload <-chan string
	if a.Config.Animation.Watch {
		w, err := stream.NewWatcher(a.Config.Animation.Keyframes)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.Events
		go func() {
			for err := range w.Errors {
				log.Printf("Watch error: %v", err)
			}
		}()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Streamer.Run(ctx) })
	g.Go(func() error { return a.Controller.Run(ctx, reload) })
	g.Go(func() error { return a.Api.Serve(ctx) })
	return g.Wait()
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	a.Client = mqtt.NewClient(options)
	a.build()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		log.Fatal(err)
	}
}
