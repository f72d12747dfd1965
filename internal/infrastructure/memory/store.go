// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Lo usan los tests y el modo demo (sin PostgreSQL): una sola
// transacción a la vez, con snapshot y rollback para conservar la atomicidad.
package memory

import (
	"sync"

	"github.com/donaria/donaciones-api/internal/domain/entity"
)

// Store guarda todo el estado en maps protegidos por un mutex global.
// lotOrder conserva el orden de creación de lotes para los desempates FIFO.
type Store struct {
	mu sync.Mutex

	items         map[string]*entity.Item
	lots          map[string]*entity.StockLot
	lotOrder      []string
	movements     []*entity.StockMovement
	donors        map[string]*entity.Donor
	beneficiaries map[string]*entity.Beneficiary
	donations     map[string]*entity.Donation
	donationLines map[string][]*entity.DonationLine
	deliveries    map[string]*entity.Delivery
	deliveryLines map[string][]*entity.DeliveryLine
	users         map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:         make(map[string]*entity.Item),
		lots:          make(map[string]*entity.StockLot),
		donors:        make(map[string]*entity.Donor),
		beneficiaries: make(map[string]*entity.Beneficiary),
		donations:     make(map[string]*entity.Donation),
		donationLines: make(map[string][]*entity.DonationLine),
		deliveries:    make(map[string]*entity.Delivery),
		deliveryLines: make(map[string][]*entity.DeliveryLine),
		users:         make(map[string]*entity.User),
	}
}

// snapshot copia el estado completo. Las entidades se copian por valor: los
// campos puntero (*time.Time) nunca se mutan in place, así que compartirlos
// es seguro.
type snapshot struct {
	items         map[string]*entity.Item
	lots          map[string]*entity.StockLot
	lotOrder      []string
	movements     []*entity.StockMovement
	donations     map[string]*entity.Donation
	donationLines map[string][]*entity.DonationLine
	deliveries    map[string]*entity.Delivery
	deliveryLines map[string][]*entity.DeliveryLine
}

// takeSnapshot requiere el mutex tomado.
func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		items:         make(map[string]*entity.Item, len(s.items)),
		lots:          make(map[string]*entity.StockLot, len(s.lots)),
		lotOrder:      append([]string(nil), s.lotOrder...),
		movements:     append([]*entity.StockMovement(nil), s.movements...),
		donations:     make(map[string]*entity.Donation, len(s.donations)),
		donationLines: make(map[string][]*entity.DonationLine, len(s.donationLines)),
		deliveries:    make(map[string]*entity.Delivery, len(s.deliveries)),
		deliveryLines: make(map[string][]*entity.DeliveryLine, len(s.deliveryLines)),
	}
	for id, it := range s.items {
		cp := *it
		snap.items[id] = &cp
	}
	for id, l := range s.lots {
		cp := *l
		snap.lots[id] = &cp
	}
	for id, d := range s.donations {
		cp := *d
		snap.donations[id] = &cp
	}
	for id, lines := range s.donationLines {
		snap.donationLines[id] = append([]*entity.DonationLine(nil), lines...)
	}
	for id, d := range s.deliveries {
		cp := *d
		snap.deliveries[id] = &cp
	}
	for id, lines := range s.deliveryLines {
		snap.deliveryLines[id] = append([]*entity.DeliveryLine(nil), lines...)
	}
	return snap
}

// restore requiere el mutex tomado.
func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.lots = snap.lots
	s.lotOrder = snap.lotOrder
	s.movements = snap.movements
	s.donations = snap.donations
	s.donationLines = snap.donationLines
	s.deliveries = snap.deliveries
	s.deliveryLines = snap.deliveryLines
}
