package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"reflect"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/storytime"
	"github.com/phanxgames/storytime/ecs"
	"github.com/phanxgames/storytime/termview"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

const (
	backendEbiten   = "ebiten"
	backendTerminal = "terminal"
)

// Keeps the config field names readable by the cli package when the binary
// is obfuscated.
var _ = reflect.TypeOf(config{})

type config struct {
	Backend   string `cli:""        env:"STORYTIME_BACKEND"    help:"Rendering backend (ebiten|terminal)."`
	Width     int    `cli:""        env:"STORYTIME_WIDTH"      help:"Viewport width in world units."`
	Height    int    `cli:""        env:"STORYTIME_HEIGHT"     help:"Viewport height in world units."`
	Actors    int    `cli:""        env:"STORYTIME_ACTORS"     help:"Number of bouncing actors to spawn."`
	Seed      int64  `cli:",hidden" env:"STORYTIME_SEED"       help:"Random seed for actor placement."`
	Script    string `cli:""        env:"STORYTIME_SCRIPT"     help:"Path to a JSON scene script to run."`
	AdminAddr string `cli:""        env:"STORYTIME_ADMIN_ADDR" help:"Listening address for the metrics endpoint. Empty disables it."`
	LogLevel  string `cli:""        env:"STORYTIME_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
	LogIndent bool   `cli:""        env:"STORYTIME_LOG_INDENT" help:"Indent logs."`
	Debug     bool   `cli:""        env:"STORYTIME_DEBUG"      help:"Log per-frame render stats and quadtree warnings."`
	Stats     bool   `cli:""        env:"STORYTIME_STATS"      help:"Draw frame rate and actor counts (ebiten backend)."`
	Shots     string `cli:""        env:"STORYTIME_SHOTS"      help:"Directory for screenshots requested by scripts."`
	Help      bool   `cli:""        env:"-"                    help:"Show help."`
}

func main() {
	conf := config{
		Backend:  backendEbiten,
		Width:    1280,
		Height:   720,
		Actors:   200,
		Seed:     1,
		LogLevel: logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs a storytime scene with bouncing actors. Click an actor to make it vanish.").
		Options(&conf)
	cli.Load()

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	scene := storytime.NewSceneWithConfig(storytime.SceneConfig{
		Name: "demo",
		Viewport: storytime.Rect{
			Width:  float64(conf.Width),
			Height: float64(conf.Height),
		},
		Debug: conf.Debug,
	})
	defer scene.Dispose()

	world := donburi.NewWorld()
	scene.SetEventStore(ecs.NewDonburiStore(world))
	ecs.SceneEventType.Subscribe(world, logSceneEvent)
	scene.SetUpdateFunc(func() error {
		events.ProcessAllEvents(world)
		return nil
	})

	if err := spawnActors(scene, conf); err != nil {
		logs.Fatal(err)
	}
	scene.OnClick(func(ctx storytime.PointerContext) {
		if a, ok := ctx.Actor.(*storytime.BaseActor); ok {
			vanish(scene, a)
		}
	})

	if conf.Script != "" {
		runner, err := loadScript(conf.Script)
		if err != nil {
			logs.Fatal(err)
		}
		scene.SetScriptRunner(runner)
	}

	if conf.AdminAddr != "" {
		go serveMetrics(ctx, conf.AdminAddr)
	}

	logs.WithTag("backend", conf.Backend).
		WithTag("scene_id", scene.ID().String()).
		WithTag("actors", scene.Len()).
		WithTag("log_level", conf.LogLevel).
		Info("starting storytime demo")

	var err error
	switch conf.Backend {
	case backendTerminal:
		err = runTerminal(ctx, scene)
	default:
		err = storytime.Run(scene, storytime.RunConfig{
			Title:         "storytime",
			Width:         conf.Width,
			Height:        conf.Height,
			ClearColor:    storytime.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
			ShowStats:     conf.Stats,
			ScreenshotDir: conf.Shots,
		})
	}
	if err != nil {
		logs.Fatal(errors.New("running scene failed").Wrap(err))
	}
}

func validateConfig(conf config) error {
	switch conf.Backend {
	case backendEbiten, backendTerminal:
	default:
		return errors.New("unknown backend").
			WithTag("backend", conf.Backend)
	}
	if conf.Width <= 0 || conf.Height <= 0 {
		return errors.New("viewport size must be positive").
			WithTag("width", conf.Width).
			WithTag("height", conf.Height)
	}
	if conf.Actors < 0 {
		return errors.New("actor count must not be negative").
			WithTag("actors", conf.Actors)
	}
	return nil
}

// spawnActors fills the viewport with randomly placed actors that bounce off
// its edges.
func spawnActors(scene *storytime.Scene, conf config) error {
	rng := rand.New(rand.NewSource(conf.Seed))
	w, h := float64(conf.Width), float64(conf.Height)

	for i := 0; i < conf.Actors; i++ {
		size := storytime.Vec2{X: 16 + rng.Float64()*48, Y: 16 + rng.Float64()*48}
		pos := storytime.Vec2{X: rng.Float64() * (w - size.X), Y: rng.Float64() * (h - size.Y)}

		a := storytime.NewBaseActor("", pos, size)
		a.Color = storytime.Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64(), A: 1}
		a.SetVelocity(storytime.Vec2{X: (rng.Float64() - 0.5) * 240, Y: (rng.Float64() - 0.5) * 240})
		a.OnUpdate = func(a *storytime.BaseActor, _ storytime.WorldTime) {
			bounce(a, w, h)
		}
		if err := scene.AddActor(a); err != nil {
			return errors.New("spawning actor failed").
				WithTag("index", i).
				Wrap(err)
		}
	}
	return nil
}

func bounce(a *storytime.BaseActor, w, h float64) {
	b := a.Bounds()
	v := a.Velocity()
	if (b.Left() < 0 && v.X < 0) || (b.Right() > w && v.X > 0) {
		v.X = -v.X
	}
	if (b.Bottom() < 0 && v.Y < 0) || (b.Top() > h && v.Y > 0) {
		v.Y = -v.Y
	}
	a.SetVelocity(v)
}

// vanish stops a, shrinks and fades it out, then removes it from scene.
func vanish(scene *storytime.Scene, a *storytime.BaseActor) {
	a.SetVelocity(storytime.Vec2{})
	shrink := storytime.TweenScale(a, 0, 0, 0.3, ease.InOutCubic)
	fade := storytime.TweenColor(a, storytime.Color{R: a.Color.R, G: a.Color.G, B: a.Color.B}, 0.3, ease.Linear)
	a.OnUpdate = func(a *storytime.BaseActor, t storytime.WorldTime) {
		dt := float32(t.Elapsed.Seconds())
		shrink.Update(dt)
		fade.Update(dt)
		if shrink.Done && fade.Done {
			scene.RemoveActor(a)
		}
	}
}

func loadScript(path string) (*storytime.ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading scene script failed").
			WithTag("path", path).
			Wrap(err)
	}
	runner, err := storytime.LoadSceneScript(data)
	if err != nil {
		return nil, errors.New("loading scene script failed").
			WithTag("path", path).
			Wrap(err)
	}
	return runner, nil
}

func logSceneEvent(w donburi.World, e storytime.SceneEvent) {
	logs.WithTag("event", e.Type.String()).
		WithTag("scene_id", e.SceneID.String()).
		WithTag("z_order", e.ZOrder).
		Debug("scene event")
}

func runTerminal(ctx context.Context, scene *storytime.Scene) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.New("creating terminal screen failed").Wrap(err)
	}
	if err := screen.Init(); err != nil {
		return errors.New("initializing terminal screen failed").Wrap(err)
	}
	defer screen.Fini()

	return termview.Run(ctx, screen, scene, termview.LoopConfig{
		TPS:        30,
		Background: storytime.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
	})
}

func serveMetrics(ctx context.Context, addr string) {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	s := &http.Server{Addr: addr, Handler: &admin}

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.Newf("shutting down the metrics server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting metrics server")
	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed, context.Canceled:
		logs.WithTag("addr", s.Addr).Info("stopping metrics server")
	default:
		logs.Warn(errors.Newf("metrics server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}
