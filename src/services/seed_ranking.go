package services

import (
	"cryptodash/src/clients/marketdata"

	"github.com/shopspring/decimal"
)

func q(name, symbol, price, marketCap, change24h, volume24h string) marketdata.Quote {
	return marketdata.Quote{
		Name:          name,
		Symbol:        symbol,
		Price:         decimal.RequireFromString(price),
		PriceCurrency: "CNY",
		MarketCap:     decimal.RequireFromString(marketCap),
		Change24h:     decimal.RequireFromString(change24h),
		Volume24h:     decimal.RequireFromString(volume24h),
	}
}

// seedRanking is the embedded quote set used when the market data provider
// is unreachable and the database holds no quotes yet, so the ranking page
// never renders empty on a fresh install.
var seedRanking = []marketdata.Quote{
	q("Bitcoin", "BTC", "605828.06", "11830000000000", "2.34", "125000000000"),
	q("Ethereum", "ETH", "20820.10", "2490000000000", "-1.56", "85000000000"),
	q("Tether", "USDT", "7.04", "1050000000000", "0.01", "250000000000"),
	q("BNB", "BNB", "6027.10", "960000000000", "3.78", "12000000000"),
	q("XRP", "XRP", "13.30", "720000000000", "5.21", "35000000000"),
	q("USD Coin", "USDC", "7.04", "580000000000", "0.02", "180000000000"),
	q("Solana", "SOL", "895.20", "460000000000", "-2.89", "42000000000"),
	q("Dogecoin", "DOGE", "0.9113", "126000000000", "-0.78", "6500000000"),
	q("TRON", "TRX", "1.96", "120000000000", "1.45", "8000000000"),
	q("Cardano", "ADA", "2.72", "92000000000", "4.32", "15000000000"),
	q("Bitcoin Cash", "BCH", "3788.70", "78000000000", "-0.34", "4800000000"),
	q("Hyperliquid", "HYPE", "192.65", "65000000000", "2.15", "3200000000"),
	q("Chainlink", "LINK", "90.32", "58000000000", "-1.23", "8500000000"),
	q("Litecoin", "LTC", "2488.50", "52000000000", "3.67", "6800000000"),
	q("Polkadot", "DOT", "28.50", "45000000000", "-0.89", "5200000000"),
	q("Toncoin", "TON", "234.50", "42000000000", "4.56", "7800000000"),
	q("Filecoin", "FIL", "385.20", "38000000000", "-2.34", "4500000000"),
	q("Cosmos", "ATOM", "128.40", "36000000000", "1.78", "6200000000"),
	q("Stellar", "XLM", "5.67", "32000000000", "-0.56", "3800000000"),
	q("Avalanche", "AVAX", "198.30", "30000000000", "2.90", "5800000000"),
	q("Monero", "XMR", "1756.20", "28000000000", "-1.34", "4200000000"),
}
