package idgen

import "github.com/snowkit/snowid/xerrors"

// GeneratorConfig 雪花算法生成器配置
//
// 典型配置示例（YAML）：
//
//	idgen:
//	  data_center_id: 3
//	  machine_id: 17
type GeneratorConfig struct {
	// DataCenterID 数据中心 ID [0, 31]
	DataCenterID int64 `yaml:"data_center_id" json:"data_center_id" mapstructure:"data_center_id"`

	// MachineID 机器 ID [0, 31]
	MachineID int64 `yaml:"machine_id" json:"machine_id" mapstructure:"machine_id"`

	// UseDefaultDataCenter 为 true 时忽略 DataCenterID，
	// 改为在构造时通过解析器推导（见 ResolveDefaultDataCenterID）
	UseDefaultDataCenter bool `yaml:"use_default_data_center" json:"use_default_data_center" mapstructure:"use_default_data_center"`
}

func (c *GeneratorConfig) validate() error {
	if c.DataCenterID < 0 || c.DataCenterID > MaxDataCenterID {
		return xerrors.WithCode(ErrInvalidConfiguration, "data_center_id_out_of_range")
	}
	if c.MachineID < 0 || c.MachineID > MaxMachineID {
		return xerrors.WithCode(ErrInvalidConfiguration, "machine_id_out_of_range")
	}
	return nil
}

// NewSnowflakeFromConfig 从配置创建 Snowflake 生成器
//
// 通常与 config.Loader 搭配使用：
//
//	var cfg idgen.GeneratorConfig
//	_ = loader.UnmarshalKey("idgen", &cfg)
//	sf, err := idgen.NewSnowflakeFromConfig(&cfg)
func NewSnowflakeFromConfig(cfg *GeneratorConfig, opts ...SnowflakeOption) (*Snowflake, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrInvalidConfiguration, "nil_config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.UseDefaultDataCenter {
		return NewSnowflakeWithDefaultDataCenter(cfg.MachineID, opts...)
	}
	return NewSnowflake(cfg.DataCenterID, cfg.MachineID, opts...)
}
