package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ReadConfigFile は fsys 上の YAML 設定ファイルを viper に読み込みます。
// path が空のときはカレントディレクトリの image-prompt.yaml を探し、無ければ何もしないのだ。
func ReadConfigFile(fsys afero.Fs, v *viper.Viper, path string) error {
	optional := false
	if path == "" {
		path = DefaultConfigFile
		optional = true
	}

	if _, err := fsys.Stat(path); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("設定ファイル %s を開けません: %w", path, err)
	}

	v.SetFs(fsys)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("設定ファイル %s の読み込みに失敗しました: %w", path, err)
	}
	return nil
}
