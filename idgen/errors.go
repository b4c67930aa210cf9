package idgen

import "github.com/snowkit/snowid/xerrors"

var (
	// ErrInvalidConfiguration 构造参数超出合法位宽范围
	ErrInvalidConfiguration = xerrors.New("idgen: invalid configuration")

	// ErrClockRolledBack 时钟回拨，拒绝生成 ID
	ErrClockRolledBack = xerrors.New("idgen: clock moved backwards, refusing to generate id")

	// ErrMalformedAddress IPv4 地址格式非法
	ErrMalformedAddress = xerrors.New("idgen: malformed ipv4 address")
)
