// Package network はサポート対象ネットワークの静的レジストリを提供する。
package network

import (
	"fmt"
	"strings"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
)

// Name はネットワーク識別子
type Name string

// 組み込みネットワーク名
const (
	Testnet   Name = "testnet"
	Futurenet Name = "futurenet"
	Mainnet   Name = "mainnet"
)

// 署名ドメイン（ネットワークパスフレーズ）
const (
	TestnetPassphrase   = "Test SDF Network ; September 2015"
	FuturenetPassphrase = "Test SDF Future Network ; October 2022"
	MainnetPassphrase   = "Public Global Stellar Network ; September 2015"
)

// Config はネットワークの接続パラメータ。生成後は変更しない。
type Config struct {
	Name            Name   `json:"name"`
	SigningDomain   string `json:"signingDomain"`
	QueryEndpoint   string `json:"queryEndpoint"`
	FundingEndpoint string `json:"fundingEndpoint,omitempty"` // 本番ネットワークでは空
}

// HasFunding はテスト用資金供給エンドポイントを持つかを返す。
func (c Config) HasFunding() bool {
	return c.FundingEndpoint != ""
}

// Registry はネットワーク名からConfigを引く不変のテーブル。
type Registry struct {
	entries     map[Name]Config
	order       []Name
	defaultName Name
}

// NewRegistry はエントリを検証してRegistryを生成する。
// エントリが空、名前の重複、デフォルト未登録、mainnetへの資金供給設定はエラーとする。
func NewRegistry(defaultName Name, entries ...Config) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("network registry: no entries")
	}

	r := &Registry{
		entries:     make(map[Name]Config, len(entries)),
		order:       make([]Name, 0, len(entries)),
		defaultName: defaultName,
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("network registry: empty network name")
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, fmt.Errorf("network registry: duplicate network %q", e.Name)
		}
		if e.SigningDomain == "" {
			return nil, fmt.Errorf("network registry: %q has no signing domain", e.Name)
		}
		if e.Name == Mainnet && e.HasFunding() {
			return nil, fmt.Errorf("network registry: %q must not have a funding endpoint", e.Name)
		}
		r.entries[e.Name] = e
		r.order = append(r.order, e.Name)
	}

	if _, ok := r.entries[defaultName]; !ok {
		return nil, classify.NewConfigurationError(string(defaultName))
	}
	return r, nil
}

// BuiltinConfigs は組み込みネットワークの設定を登録順で返す。
func BuiltinConfigs() []Config {
	return []Config{
		{
			Name:            Testnet,
			SigningDomain:   TestnetPassphrase,
			QueryEndpoint:   "https://horizon-testnet.stellar.org",
			FundingEndpoint: "https://friendbot.stellar.org",
		},
		{
			Name:            Futurenet,
			SigningDomain:   FuturenetPassphrase,
			QueryEndpoint:   "https://horizon-futurenet.stellar.org",
			FundingEndpoint: "https://friendbot-futurenet.stellar.org",
		},
		{
			Name:          Mainnet,
			SigningDomain: MainnetPassphrase,
			QueryEndpoint: "https://horizon.stellar.org",
		},
	}
}

// NewDefaultRegistry は組み込みネットワークでRegistryを生成する。
func NewDefaultRegistry(defaultName Name) (*Registry, error) {
	return NewRegistry(defaultName, BuiltinConfigs()...)
}

// Get は指定されたネットワークの設定を返す。
// 未登録の名前の場合は*classify.ConfigurationErrorを返す。
func (r *Registry) Get(name Name) (Config, error) {
	cfg, ok := r.entries[name]
	if !ok {
		return Config{}, classify.NewConfigurationError(string(name))
	}
	return cfg, nil
}

// MustGet はGetと同じだが、未登録の場合はパニックする。
// 登録済みであることが保証された名前にのみ使う。
func (r *Registry) MustGet(name Name) Config {
	cfg, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Names は登録順のネットワーク名を返す。
func (r *Registry) Names() []Name {
	out := make([]Name, len(r.order))
	copy(out, r.order)
	return out
}

// Configs は登録順のネットワーク設定を返す。
func (r *Registry) Configs() []Config {
	out := make([]Config, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entries[n])
	}
	return out
}

// Contains は指定された名前が登録済みかを返す。
func (r *Registry) Contains(name Name) bool {
	_, ok := r.entries[name]
	return ok
}

// Default は既定のネットワーク名を返す。
func (r *Registry) Default() Name {
	return r.defaultName
}

// labelAliases は拡張機能が報告するネットワークラベルの別名
var labelAliases = map[string]Name{
	"TESTNET":   Testnet,
	"FUTURENET": Futurenet,
	"PUBLIC":    Mainnet,
	"MAINNET":   Mainnet,
}

// Resolve は拡張機能が報告するネットワークラベル（TESTNET/PUBLIC等）または
// 署名ドメインを登録済みのネットワーク名に変換する。
func (r *Registry) Resolve(raw string) (Name, bool) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return "", false
	}

	if name := Name(strings.ToLower(label)); r.Contains(name) {
		return name, true
	}
	if name, ok := labelAliases[strings.ToUpper(label)]; ok && r.Contains(name) {
		return name, true
	}
	for _, n := range r.order {
		if r.entries[n].SigningDomain == label {
			return n, true
		}
	}
	return "", false
}
