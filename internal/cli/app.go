package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/analytics"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/outbox"
	"github.com/dmitrijs2005/finhive/internal/services"
)

// Syncer is the outbox surface used by the status and sync commands.
// *outbox.Worker implements it.
type Syncer interface {
	Sync(ctx context.Context) (outbox.Result, error)
	Status(ctx context.Context) (outbox.Status, error)
}

type App struct {
	user   string
	svc    *services.Services
	engine *analytics.Engine
	syncer Syncer
	log    logging.Logger

	in     *bufio.Reader
	out    io.Writer
	prompt bool
}

type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
	}
}

// WithPrompt turns the status prompt and field prompts on or off.
func WithPrompt(on bool) Option {
	return func(a *App) { a.prompt = on }
}

func NewApp(user string, svc *services.Services, engine *analytics.Engine, syncer Syncer, log logging.Logger, opts ...Option) *App {
	a := &App{
		user:   user,
		svc:    svc,
		engine: engine,
		syncer: syncer,
		log:    logging.ForModule(log, "cli"),
		prompt: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.in == nil || a.out == nil {
		panic("cli: WithIO is required")
	}
	return a
}

// Run starts the shell and returns when the user leaves, input ends or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	if a.prompt {
		printlnFn("Welcome to FinHive (type 'help' for commands)")
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.in, a.prompt)
}

func (a *App) status(ctx context.Context) string {
	s := a.user
	st, err := a.syncer.Status(ctx)
	if err != nil {
		return "(" + s + ")"
	}
	mode := "offline"
	if st.Online {
		mode = "online"
	}
	s += " " + mode
	if st.Pending > 0 {
		s += fmt.Sprintf(", %d pending", st.Pending)
	}
	return "(" + s + ")"
}

// ask prompts for one field. Prompts are suppressed in non-interactive
// sessions, where answers are read line by line.
func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.in, prompt, a.promptWriter())
}

func (a *App) askOptional(prompt string) (*string, error) {
	return GetOptionalText(a.in, prompt, a.promptWriter())
}

func (a *App) askYesNo(prompt string) (*bool, error) {
	return GetYesNo(a.in, prompt, a.promptWriter())
}

func (a *App) promptWriter() io.Writer {
	if a.prompt {
		return a.out
	}
	return io.Discard
}

// Help lists the commands.
func (a *App) Help() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		c := commands[name]
		usage := name
		if c.args != "" {
			usage += " " + c.args
		}
		fmt.Fprintf(&b, "  %-24s %s\n", usage, c.help)
	}
	b.WriteString("  exit | quit               leave the program")
	return b.String()
}

// Exec runs one command.
func (a *App) Exec(ctx context.Context, cmd string, args []string) error {
	c, ok := commands[cmd]
	if !ok {
		return errUnknownCommand
	}
	if len(args) < c.minArgs {
		return fmt.Errorf("usage: %s %s", cmd, c.args)
	}
	return c.run(a, ctx, args)
}
