package model

// TokenMeta is what the CLI prints about an ERC20. TotalSupply is in base units.
type TokenMeta struct {
	Address     string `json:"address"`
	Name        string `json:"name,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply,omitempty"`
}
