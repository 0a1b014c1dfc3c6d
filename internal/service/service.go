package service

type Services struct {
	Chip *ChipService
}

func NewServices(fetcher Fetcher) *Services {
	return &Services{
		Chip: NewChipService(fetcher),
	}
}
