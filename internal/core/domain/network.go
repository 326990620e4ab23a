package domain

// Network identifies the chain a seed or wallet belongs to.
type Network int

const (
	NetworkMain Network = iota
	NetworkTest
	NetworkStage
)

var (
	networkNames = map[Network]string{
		NetworkMain:  "mainnet",
		NetworkTest:  "testnet",
		NetworkStage: "stagenet",
	}
	// Base58check version bytes of primary addresses, per network.
	addressVersions = map[Network]byte{
		NetworkMain:  18,
		NetworkTest:  53,
		NetworkStage: 24,
	}
)

func (n Network) String() string {
	return networkNames[n]
}

// AddressVersion returns the base58check version byte of the network.
func (n Network) AddressVersion() byte {
	return addressVersions[n]
}

// ParseNetwork returns the network with the given name.
func ParseNetwork(name string) (Network, error) {
	for net, netName := range networkNames {
		if netName == name {
			return net, nil
		}
	}
	return 0, ErrNetworkNotSupported
}
