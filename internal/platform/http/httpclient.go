package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は価格ダンプのダウンロード用に設定されたHTTPクライアントを作成します。
//
// ダンプは1日1回、単一ホストから取得する大きめのJSONなので:
//   - アイドル接続は少数だけ保持（同一ホストへのリトライで再利用）
//   - ResponseHeaderTimeout でヘッダーが返らないサーバーを早めに切る
//   - 本文の読み込みを含む全体の上限は timeout（呼び出し元から渡される）
//
// http.DefaultClientにはタイムアウトがないため使用しないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
