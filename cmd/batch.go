package cmd

import (
	"fmt"

	"github.com/shouni/go-image-prompt/internal/pipeline"

	"github.com/spf13/cobra"
)

var batchOpts pipeline.BatchOptions

// batchCmd は、複数のアイデアを同じ画風で順番に処理し、1つのファイルにまとめるのだ。
var batchCmd = &cobra.Command{
	Use:   "batch [アイデア...]",
	Short: "複数のアイデアからまとめてプロンプトを生成しますなのだ。",
	Long: `引数と --ideas-file (1行1件、'-' で標準入力) のアイデアを順番に生成し、
すべての結果を1つの集約ファイルに書き出すのだ。途中で失敗したらファイルは書かないのだよ。`,
	Example: `  image-prompt-go batch --style anime "kucing" "anjing"
  cat ideas.txt | image-prompt-go batch --ideas-file -`,
	RunE: batchCommand,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOpts.Style, "style", "s", "", "全件に使う画風の番号または自由記述なのだ。")
	batchCmd.Flags().StringVarP(&batchOpts.IdeasFile, "ideas-file", "f", "", "アイデアを1行1件で書いたファイル ('-' で標準入力) なのだ。")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	opts := batchOpts
	opts.Ideas = args

	streams := pipeline.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := pipeline.ExecuteBatch(cmd.Context(), appCtx, appFs, streams, opts); err != nil {
		return fmt.Errorf("バッチ生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
