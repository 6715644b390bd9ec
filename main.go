package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/HyunSeo88/palette-sub001/app"
	"github.com/HyunSeo88/palette-sub001/app/likes"
	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/infra/auth"
	"github.com/HyunSeo88/palette-sub001/infra/config"
	"github.com/HyunSeo88/palette-sub001/infra/editor"
	"github.com/HyunSeo88/palette-sub001/infra/logging"
	"github.com/HyunSeo88/palette-sub001/infra/palette"
	"github.com/HyunSeo88/palette-sub001/infra/realtime"
	"github.com/HyunSeo88/palette-sub001/tui"
	"github.com/HyunSeo88/palette-sub001/tui/feed"
	"github.com/HyunSeo88/palette-sub001/tui/login"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliLogin
	cliLogout
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "login":
		return cliLogin, ""
	case "logout":
		return cliLogout, ""
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: palette [login|logout] [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			c = rev[:min(len(rev), 12)]
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// resolveActor works out who is signed in. The token's claims give a first
// answer; the account endpoint confirms it when reachable. An empty id means
// read-only browsing.
func resolveActor(ctx context.Context, tokens auth.TokenProvider, account app.AccountService, logger *zap.Logger) (string, error) {
	token, err := tokens.AccessToken()
	if err != nil {
		logger.Info("no stored session", zap.Error(err))
		return "", nil
	}

	userID, claimErr := auth.ActorFromToken(token)
	if claimErr != nil {
		logger.Debug("token has no usable claims", zap.Error(claimErr))
	}

	profile, err := account.CurrentUser(ctx)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "", fmt.Errorf("session expired, run `palette login`: %w", err)
	case err != nil:
		logger.Warn("could not confirm account, using token claims", zap.Error(err))
		return userID, nil
	case profile.ID != "":
		return profile.ID, nil
	}
	return userID, nil
}

func initialView(path string, logger *zap.Logger) feed.View {
	st, err := config.LoadUIState(path)
	if err != nil {
		logger.Warn("ignoring unreadable ui state", zap.Error(err))
		return feed.ViewFeed
	}
	if feed.View(st.LastView) == feed.ViewTop {
		return feed.ViewTop
	}
	return feed.ViewFeed
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("Palette %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from config.toml and environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	switch mode {
	case cliLogin:
		if err := runLogin(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "login: %v\n", err)
			os.Exit(1)
		}
		return
	case cliLogout:
		if err := os.Remove(cfg.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "logout: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Signed out.")
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
		os.Exit(1)
	}
}

func runLogin(cfg config.Config) error {
	final, err := tea.NewProgram(login.New(os.Getenv("PALETTE_EMAIL"))).Run()
	if err != nil {
		return err
	}
	creds, ok := final.(login.Model).Result()
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	sess, err := auth.Login(ctx, cfg.APIURL, creds.Email, creds.Password, cfg.TokenPath)
	if err != nil {
		return err
	}
	name := sess.Nickname
	if name == "" {
		name = creds.Email
	}
	fmt.Printf("Signed in as %s.\n", name)
	return nil
}

func run(cfg config.Config) error {
	// 2. Logger. The TUI owns the terminal, so this normally writes to a file.
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// 3. Build infrastructure.
	tokenProvider := auth.NewFileTokenProvider(cfg.TokenPath)
	client := palette.NewClient(cfg.APIURL, tokenProvider,
		palette.WithTimeout(cfg.RequestTimeout),
		palette.WithRateLimit(10, 5),
		palette.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	userID, err := resolveActor(ctx, tokenProvider, palette.NewAccountService(client), logger)
	cancel()
	if err != nil {
		return err
	}
	if userID == "" {
		fmt.Fprintln(os.Stderr, "Not signed in. Browsing read-only; run `palette login` to like and post.")
	}

	// 4. Build services and the shared cache.
	feedSvc := palette.NewFeedService(client, userID)
	postSvc := palette.NewPostService(client, userID)
	posts := store.New()
	reconciler := likes.New(posts, postSvc, logger.Named("likes"))

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var updates <-chan realtime.LikeUpdate
	if cfg.WSURL != "" && userID != "" {
		sub := realtime.NewSubscriber(cfg.WSURL, tokenProvider, logger.Named("realtime"))
		updates = sub.Updates()
		go func() {
			if err := sub.Run(runCtx); err != nil {
				logger.Warn("realtime stopped", zap.Error(err))
			}
		}()
	}

	// 5. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Feed:        feedSvc,
		Post:        postSvc,
		Store:       posts,
		Likes:       reconciler,
		Editor:      editor.NewEnvEditor(),
		Updates:     updates,
		UserID:      userID,
		PageSize:    cfg.PageSize,
		InitialView: initialView(cfg.UIStatePath, logger),
		UIStatePath: cfg.UIStatePath,
		Logger:      logger.Named("tui"),
	})

	// 6. Run.
	logger.Info("starting", zap.String("api_url", cfg.APIURL), zap.Bool("signed_in", userID != ""))
	if _, err := tea.NewProgram(rootModel, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
