package generator

import (
	"fmt"
	"io"
	"net/http"

	"github.com/shouni/go-http-kit/httpkit"
)

// maxErrorBody は非200応答から読み取る本文の上限なのだ。
const maxErrorBody = 1 << 20

// StatusError は 200 以外の HTTP ステータスを表します。Body は応答本文そのままなのだ。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error %d: %s", e.Code, e.Body)
}

// statusCheckingDoer は go-openai の HTTPDoer を満たし、200 以外の応答を StatusError に変換するのだ。
// go-openai 側のエラー処理を通すと本文が残らないので、ここで原文を保持するのだ。
type statusCheckingDoer struct {
	client httpkit.Doer
}

func (d statusCheckingDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("エラー応答 (status %d) の読み込みに失敗しました: %w", resp.StatusCode, err)
	}
	return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
}
