package model

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID はタイムスタンプ由来のIDを生成する。
// Unixミリ秒をそのままIDとし、同一ミリ秒内の連続生成では
// 直前の値に1を加算して一意性を保つ。
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
