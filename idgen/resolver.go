package idgen

import (
	"fmt"
	"math/rand/v2"
	"net"
	"strconv"
	"strings"

	"github.com/snowkit/snowid/xerrors"
)

// ResolveDefaultDataCenterID 从本机网络地址推导默认数据中心 ID [0, 31]
//
// 把点分十进制 IPv4 地址按低位在前打包成整数后对 32 取模。低位八位组
// 变化最频繁，放到整数高位再取模可以降低同网段主机的碰撞概率。
//
// 地址获取失败时退化为 [0, 31] 的伪随机数。注意：随机回退路径有与其他
// 实例碰撞的可能，需要保证唯一性的调用方必须显式传入 dataCenterID，
// 而不是依赖本函数。
func ResolveDefaultDataCenterID() int64 {
	if ip, err := localIPv4(); err == nil {
		if packed, err := ipv4ToLong(ip.String()); err == nil {
			return packed % (MaxDataCenterID + 1)
		}
	}
	return rand.Int64N(MaxDataCenterID + 1)
}

// ipv4ToLong 将点分十进制 IPv4 地址打包成整数
//
// 将地址低位存储至整数的高位：
//
//	"1.2.3.4" -> (4<<24) + (3<<16) + (2<<8) + 1
//
// 地址为空或不是四段时返回 ErrMalformedAddress。
func ipv4ToLong(address string) (int64, error) {
	if address == "" {
		return 0, xerrors.WithCode(ErrMalformedAddress, "empty_address")
	}
	parts := strings.Split(address, ".")
	if len(parts) != 4 {
		return 0, xerrors.Wrapf(ErrMalformedAddress, "address: %q", address)
	}

	var packed int64
	for i, part := range parts {
		octet, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, xerrors.Wrapf(ErrMalformedAddress, "address: %q", address)
		}
		packed += octet << (8 * i)
	}
	return packed, nil
}

// localIPv4 获取本机第一个非 loopback 的 IPv4 地址
func localIPv4() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip := ipnet.IP.To4(); ip != nil {
				return ip, nil
			}
		}
	}
	return nil, fmt.Errorf("no valid ipv4 address found")
}
