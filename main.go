package main

import (
	"github.com/shouni/go-image-prompt/cmd"
)

// main は image-prompt-go のエントリーポイントなのだ。
func main() {
	cmd.Execute()
}
