// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
)

const (
	appName    = "mu_vrma_player"
	appVersion = "0.1.0"
)

// main はVRMAモーションのheadless再生CLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	previous := mlogging.DefaultLogger()
	defer mlogging.RestoreDefaultLogger(previous)

	rt := &cliRuntime{out: out, errOut: errOut}
	app := &cli.App{
		Name:      appName,
		Usage:     "VRMアニメーションをVRMアバターへリターゲットして再生する",
		Version:   appVersion,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "設定ファイル `FILE` を読み込む",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "表示言語 (ja|en)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "ログレベル (debug|info|warn|error)",
			},
		},
		Before: rt.setup,
		Commands: []*cli.Command{
			inspectCommand(rt),
			playCommand(rt),
			watchCommand(rt),
			configCommand(rt),
		},
	}
	return app.Run(append([]string{appName}, args...))
}
