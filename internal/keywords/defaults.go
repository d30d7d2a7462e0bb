// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import "github.com/pdiddy/prospectus-splitter/pkg/types"

func defaultRules() map[types.ExtractionType]Rule {
	return map[types.ExtractionType]Rule{
		types.CoverUnderwriter: {
			Keywords: [][]string{
				{"keterangan tentang penjaminan emisi efek"},
				{"susunan dan jumlah porsi penjaminan"},
			},
		},
		types.BalanceSheet: {
			Keywords: [][]string{
				{"laporan posisi keuangan", "cash and cash equivalent", "catatan/"},
				{"laporan posisi keuangan", "cash", "total assets", "catatan/"},
				{"laporan posisi keuangan", "piutang", "jumlah aset", "catatan"},
				{"laporan posisi keuangan", "piutang", "total aset", "catatan"},
				{"consolidated statement", "piutang", "total aset", "catatan/"},
				{"piutang", "total aset", "notes"},
				{"piutang", "jumlah aset", "notes"},
			},
			Stop: [][]string{
				{"laba per saham", "jumlah ekuitas", "total ekuitas"},
			},
		},
		types.CashFlow: {
			Keywords: [][]string{
				{"laporan arus kas", "arus kas dari", "aktivitas operasi", "catatan/"},
				{"laporan arus kas", "arus kas dari", "catatan/"},
				{"laporan arus kas", "arus kas dari", "catatan"},
				{"arus kas dari", "aktivitas operasi", "catatan"},
			},
			Stop: [][]string{
				{"kas dan setara kas", "kas dan bank", "kas dan setara"},
			},
		},
		types.IncomeStatement: {
			Keywords: [][]string{
				{"laporan laba rugi", "penjualan", "pokok penjualan", "catatan/"},
				{"laporan laba rugi", "revenues", "beban pokok", "catatan/"},
				{"laporan laba rugi", "revenue", "beban pokok", "catatan/"},
				{"laporan laba rugi", "penjualan", "beban pokok", "catatan"},
				{"laporan laba rugi", "pendapatan", "beban pokok", "catatan"},
				{"laporan laba rugi", "income", "catatan/"},
				{"laporan laba rugi", "pendapatan", "catatan/"},
				{"laporan laba rugi", "pendapatan usaha", "catatan"},
				{"laporan laba rugi", "pendapatan", "catatan"},
				{"penjualan", "beban pokok", "catatan"},
			},
			Stop: [][]string{
				{"per saham", "total comprehensive", "laba komprehensif", "laba bersih per"},
			},
			Anti: [][]string{
				{"laporan perubahan ekuitas", "laporan arus kas"},
			},
		},
	}
}
