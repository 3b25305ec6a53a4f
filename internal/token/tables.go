package token

import "batchSwap/internal/model"

// DefaultSupported lists the tokens that can be priced and traded through the swapper.
var DefaultSupported = []model.Token{
	{
		Name:     "Dogecoin",
		Symbol:   "DOGE",
		Address:  "0xba2ae424d960c26247dd6c32edc70b295c744c43",
		Decimals: 8,
		Pool:     "0xce6160bb594fc055c943f59de92cee30b8c6b32c",
		Fee:      2500,
	},
	{
		Name:     "Broccoli",
		Symbol:   "Broccoli",
		Address:  "0x12b4356c65340fb02cdff01293f95febb1512f3b",
		Decimals: 18,
		Pool:     "0xdb25c09d96c165b62f6e6f9d9b17174738d897ba",
		Fee:      10000,
	},
	{
		Name:     "CZ'S DOG",
		Symbol:   "Broccoli",
		Address:  "0x6d5ad1592ed9d6d1df9b93c793ab759573ed6714",
		Decimals: 18,
		Pool:     "0xa5067360b13fc7a2685dc82dcd1bf2b4b8d7868b",
		Fee:      10000,
	},
	{
		Name:     "Cheems",
		Symbol:   "Cheems",
		Address:  "0x0df0587216a4a1bb7d5082fdc491d93d2dd4b413",
		Decimals: 18,
		Pool:     "0x38231d4ef9d33ebea944c75a21301ff6986499c3",
		Fee:      2500,
	},
}

// DefaultKnown lists tokens with display metadata used when decoding swap logs.
var DefaultKnown = []model.Token{
	{Name: "BNB", Symbol: "BNB", Address: "0xbb4cdb9cbd36b01bd1cbaebf2de08d9173bc095c", Decimals: 18},
	{Name: "Dogecoin", Symbol: "DOGE", Address: "0xba2ae424d960c26247dd6c32edc70b295c744c43", Decimals: 8},
	{Name: "Broccoli", Symbol: "Broccoli", Address: "0x12b4356c65340fb02cdff01293f95febb1512f3b", Decimals: 18},
	{Name: "CZ'S DOG", Symbol: "Broccoli", Address: "0x6d5ad1592ed9d6d1df9b93c793ab759573ed6714", Decimals: 18},
	{Name: "Cheems", Symbol: "Cheems", Address: "0x0df0587216a4a1bb7d5082fdc491d93d2dd4b413", Decimals: 18},
	{Name: "AlwaysDog", Symbol: "ADOG", Address: "0xf6c6eafe07d0973aa47d95122675d86d42aa4ab4", Decimals: 18},
}
