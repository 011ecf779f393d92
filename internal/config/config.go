package config

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
	"git.lost.host/meutraa/orbital/internal/tracker"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	Directory   string
	Offset      time.Duration
	Delay       time.Duration
	Speed       int
	Volume      int
	Device      string
	FramePeriod time.Duration
	Difficulty  string
	Seed        int64
	Database    string
	LogFile     string
	Replay      bool
	Silent      bool

	keys string
}

// New builds the command line application, binding every flag into c
func New(c *Config) *kingpin.Application {
	app := kingpin.New("orbital", "A four lane diagonal rhythm game for the terminal.")
	app.Version(Version)
	app.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&c.Directory)
	app.Flag("offset", "Global offset").Default("0ms").Short('o').DurationVar(&c.Offset)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	app.Flag("speed", "Note speed, 1 (slow) to 10 (fast)").Default("5").Short('s').IntVar(&c.Speed)
	app.Flag("volume", "Music volume, 0 to 100").Default("80").Short('v').IntVar(&c.Volume)
	app.Flag("keys", "Keys for the UL, UR, DL and DR lanes").Default("akzm").Short('k').StringVar(&c.keys)
	app.Flag("device", "Read key presses from this evdev device").StringVar(&c.Device)
	app.Flag("frame-period", "Game loop tick period").Default("4ms").Short('p').DurationVar(&c.FramePeriod)
	app.Flag("difficulty", "Difficulty of generated charts").Default("hard").EnumVar(&c.Difficulty, "easy", "hard")
	app.Flag("seed", "Seed for generated charts, 0 picks one from the time").Default("0").Int64Var(&c.Seed)
	app.Flag("db", "Score database").Default("scores.db").StringVar(&c.Database)
	app.Flag("log", "Log file").Default("orbital.log").StringVar(&c.LogFile)
	app.Flag("replay", "Replay the latest stored session instead of playing").BoolVar(&c.Replay)
	app.Flag("silent", "Play without audio").BoolVar(&c.Silent)
	return app
}

func Parse(args []string) (*Config, error) {
	c := &Config{}
	if _, err := New(c).Parse(args); nil != err {
		return nil, err
	}
	if err := c.validate(); nil != err {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Speed < 1 || c.Speed > 10 {
		return fmt.Errorf("speed %v is not within 1 to 10", c.Speed)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume %v is not within 0 to 100", c.Volume)
	}
	if c.FramePeriod <= 0 {
		return fmt.Errorf("frame period %v must be positive", c.FramePeriod)
	}
	keys := []rune(c.keys)
	if len(keys) != game.NLanes {
		return fmt.Errorf("expected %v keys, got %q", game.NLanes, c.keys)
	}
	seen := map[rune]bool{}
	for _, k := range keys {
		if seen[k] {
			return fmt.Errorf("key %q bound to more than one lane", k)
		}
		seen[k] = true
	}
	return nil
}

// Keys are the runes bound to each lane, in lane order
func (c *Config) Keys() [game.NLanes]rune {
	var keys [game.NLanes]rune
	copy(keys[:], []rune(c.keys))
	return keys
}

func (c *Config) Approach() time.Duration {
	return tracker.ApproachForSpeed(c.Speed)
}

func (c *Config) GenerationSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
