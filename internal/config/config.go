package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/threadnav/topic-browser/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envForumURL     = "TOPIC_BROWSER_FORUM_URL"
	envCourseID     = "TOPIC_BROWSER_COURSE"
	envUserID       = "TOPIC_BROWSER_USER"
	envGroupID      = "TOPIC_BROWSER_GROUP"
	envSortKey      = "TOPIC_BROWSER_SORT_KEY"
	envPageSize     = "TOPIC_BROWSER_PAGE_SIZE"
	envPollInterval = "TOPIC_BROWSER_POLL_INTERVAL"
	envWidth        = "TOPIC_BROWSER_WIDTH"
	envHeight       = "TOPIC_BROWSER_HEIGHT"
	envShowFooter   = "TOPIC_BROWSER_FOOTER"
	envVerbose      = "TOPIC_BROWSER_VERBOSE"
	envTrace        = "TOPIC_BROWSER_TRACE"
	envLogFile      = "TOPIC_BROWSER_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("topic-browser", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	forumURL := fs.String("forum-url", envOrDefault(env, envForumURL, "http://localhost:4567/api/v1"), "base URL of the forum HTTP API")
	course := fs.String("course", envOrDefault(env, envCourseID, ""), "course identifier whose topics are browsed")
	user := fs.String("user", envOrDefault(env, envUserID, ""), "user id for followed-threads queries")
	group := fs.String("group", envOrDefault(env, envGroupID, ""), "optional cohort group id applied to thread queries")
	sortKey := fs.String("sort-key", envOrDefault(env, envSortKey, "activity"), "sort key for thread queries")
	pageSize := fs.Int("page-size", envOrInt(env, envPageSize, 20), "threads fetched per page")
	poll := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, 30*time.Second), "topic catalog poll interval")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print informational messages for selections")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pageSize < 1 {
		return Config{}, fmt.Errorf("page-size must be >= 1 (got %d)", *pageSize)
	}
	if strings.TrimSpace(*course) == "" {
		return Config{}, fmt.Errorf("course identifier is required")
	}

	cfg := Config{
		App: app.Config{
			ForumURL:     *forumURL,
			CourseID:     *course,
			UserID:       *user,
			GroupID:      *group,
			SortKey:      *sortKey,
			PageSize:     *pageSize,
			PollInterval: *poll,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"forumURL": *forumURL,
			"course":   *course,
			"user":     *user,
			"group":    *group,
			"sortKey":  *sortKey,
			"pageSize": strconv.Itoa(*pageSize),
			"poll":     poll.String(),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	// Additional validation hooks can be placed here as configuration evolves.
	return nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
