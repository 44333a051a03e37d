package config

const (
	defaultNETCONFPort = 830
)
