// Package cli 实现 writer 命令行：一次性生成/润色、偏好管理、目录查看以及终端界面。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/config"
	"writemaster-api/internal/wire"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
	"writemaster-api/pkg/tracer"
)

// Version 构建时注入
var Version = "dev"

type app struct {
	configDir      string
	cfg            *config.Config
	logCloser      func()
	tracerShutdown func(context.Context) error
}

// newRootCmd 构建根命令
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "writer",
		Short:         "Turn one idea into posts, threads and essays in a chosen voice",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Name() == "tui")
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "directory containing config.yaml (default $"+config.ConfigDirEnv+" or ./configs)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newRefineCmd(a))
	root.AddCommand(newPrefsCmd(a))
	root.AddCommand(newFormatsCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newTonesCmd())
	root.AddCommand(newTUICmd(a))

	return root
}

// Execute 运行命令行，Ctrl-C 取消进行中的请求
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+apperrors.UserMessage(err)))
		return err
	}
	return nil
}

// execute 运行根命令后释放 tracer 与日志文件；RunE 返回错误时 cobra 不会调用 PersistentPostRun
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

func (a *app) close() {
	if a.tracerShutdown != nil {
		_ = a.tracerShutdown(context.Background())
		a.tracerShutdown = nil
	}
	if a.logCloser != nil {
		a.logCloser()
		a.logCloser = nil
	}
}

func (a *app) init(tui bool) error {
	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if a.configDir != "" {
		cfg, err = config.LoadFrom(a.configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	w, closer, err := logOutput(cfg.Observability.Logging.Output, tui)
	if err != nil {
		return err
	}
	a.logCloser = closer
	logger.InitWithWriter(w, cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	shutdown, err := tracer.Init(context.Background(), tracer.Config{
		ServiceName:    "writer",
		ServiceVersion: Version,
		Endpoint:       cfg.Observability.Tracing.Endpoint,
		SampleRate:     cfg.Observability.Tracing.SampleRate,
		Enabled:        cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown
	return nil
}

// logOutput 命令行模式写 stderr；终端界面独占屏幕，只在配置了文件路径时写日志
func logOutput(output string, tui bool) (io.Writer, func(), error) {
	switch output {
	case "", "stdout", "stderr":
		if tui {
			return io.Discard, nil, nil
		}
		return os.Stderr, nil, nil
	}
	w, closeFn, err := logger.OpenOutput(output)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return w, func() { _ = closeFn() }, nil
}

func (a *app) workspace(ctx context.Context, opts ...workspace.Option) (*wire.Workspace, func(), error) {
	ws, cleanup, err := wire.InitializeWorkspace(ctx, a.cfg, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize workspace: %w", err)
	}
	return ws, cleanup, nil
}
