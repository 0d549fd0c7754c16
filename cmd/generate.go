package cmd

import (
	"fmt"
	"strings"

	"github.com/shouni/go-image-prompt/internal/pipeline"

	"github.com/spf13/cobra"
)

var generateOpts pipeline.GenerateOptions

// generateCmd は、1件のアイデアからプロンプトを生成して標準出力に書き出すのだ。
var generateCmd = &cobra.Command{
	Use:   "generate [アイデア]",
	Short: "1件のアイデアからプロンプトを生成しますなのだ。",
	Long: `アイデアと画風から画像生成AI向けのプロンプトを1件作り、標準出力に書き出すのだ。
--save を付けると prompt_<アイデア>.txt にも保存するのだよ。`,
	Example: `  image-prompt-go generate --idea "kucing di taman" --style 2 --save`,
	RunE:    generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.Idea, "idea", "i", "", "プロンプトの元になるアイデアなのだ。")
	generateCmd.Flags().StringVarP(&generateOpts.Style, "style", "s", "", "画風の番号 (1-8) または自由記述なのだ。省略時は realistic なのだ。")
	generateCmd.Flags().BoolVar(&generateOpts.Save, "save", false, "結果をファイルにも保存するのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	opts := generateOpts
	if opts.Idea == "" {
		opts.Idea = strings.Join(args, " ")
	}

	streams := pipeline.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := pipeline.ExecuteGenerate(cmd.Context(), appCtx, streams, opts); err != nil {
		return fmt.Errorf("プロンプト生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
