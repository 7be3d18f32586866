package character

// Copper values of each coin denomination.
const (
	CopperPerSilver   = 10
	CopperPerElectrum = 50
	CopperPerGold     = 100
	CopperPerPlatinum = 1000
)

// Currency holds a character's coin counts by denomination. All counts
// are non-negative.
type Currency struct {
	Copper   int `json:"copper"`
	Silver   int `json:"silver"`
	Electrum int `json:"electrum"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}

// TotalInCopper returns the total value of all coins expressed in copper.
//
// Postcondition: result == Copper + 10*Silver + 50*Electrum + 100*Gold + 1000*Platinum.
func (c Currency) TotalInCopper() int {
	return c.Copper +
		c.Silver*CopperPerSilver +
		c.Electrum*CopperPerElectrum +
		c.Gold*CopperPerGold +
		c.Platinum*CopperPerPlatinum
}
