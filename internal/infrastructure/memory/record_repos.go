package memory

import (
	"sort"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)
var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DonationRepo donaciones en memoria.
type DonationRepo struct {
	s    *Store
	inTx bool
}

// NewDonationRepository construye el repo de donaciones sobre el store.
func NewDonationRepository(s *Store) *DonationRepo {
	return &DonationRepo{s: s}
}

func (r *DonationRepo) Create(donation *entity.Donation, lines []*entity.DonationLine) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.donations[donation.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *donation
	r.s.donations[donation.ID] = &cp
	copied := make([]*entity.DonationLine, len(lines))
	for i, l := range lines {
		lcp := *l
		copied[i] = &lcp
	}
	r.s.donationLines[donation.ID] = copied
	return nil
}

func (r *DonationRepo) GetByID(id string) (*entity.Donation, []*entity.DonationLine, error) {
	defer r.s.acquire(r.inTx)()
	d, ok := r.s.donations[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *d
	lines := make([]*entity.DonationLine, len(r.s.donationLines[id]))
	for i, l := range r.s.donationLines[id] {
		lcp := *l
		lines[i] = &lcp
	}
	return &cp, lines, nil
}

func (r *DonationRepo) ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.Donation
	for _, d := range r.s.donations {
		if d.DonorID == donorID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortDonationsDesc(out)
	return paginate(out, limit, offset), nil
}

func (r *DonationRepo) List(limit, offset int) ([]*entity.Donation, error) {
	defer r.s.acquire(r.inTx)()
	out := make([]*entity.Donation, 0, len(r.s.donations))
	for _, d := range r.s.donations {
		cp := *d
		out = append(out, &cp)
	}
	sortDonationsDesc(out)
	return paginate(out, limit, offset), nil
}

func sortDonationsDesc(ds []*entity.Donation) {
	sort.Slice(ds, func(i, j int) bool {
		if !ds[i].Date.Equal(ds[j].Date) {
			return ds[i].Date.After(ds[j].Date)
		}
		return ds[i].ID < ds[j].ID
	})
}

// DeliveryRepo entregas en memoria.
type DeliveryRepo struct {
	s    *Store
	inTx bool
}

// NewDeliveryRepository construye el repo de entregas sobre el store.
func NewDeliveryRepository(s *Store) *DeliveryRepo {
	return &DeliveryRepo{s: s}
}

func (r *DeliveryRepo) Create(delivery *entity.Delivery, lines []*entity.DeliveryLine) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.deliveries[delivery.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *delivery
	r.s.deliveries[delivery.ID] = &cp
	copied := make([]*entity.DeliveryLine, len(lines))
	for i, l := range lines {
		lcp := *l
		copied[i] = &lcp
	}
	r.s.deliveryLines[delivery.ID] = copied
	return nil
}

func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, []*entity.DeliveryLine, error) {
	defer r.s.acquire(r.inTx)()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *d
	lines := make([]*entity.DeliveryLine, len(r.s.deliveryLines[id]))
	for i, l := range r.s.deliveryLines[id] {
		lcp := *l
		lines[i] = &lcp
	}
	return &cp, lines, nil
}

func (r *DeliveryRepo) ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Delivery, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if d.BeneficiaryID == beneficiaryID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortDeliveriesDesc(out)
	return paginate(out, limit, offset), nil
}

func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	defer r.s.acquire(r.inTx)()
	out := make([]*entity.Delivery, 0, len(r.s.deliveries))
	for _, d := range r.s.deliveries {
		cp := *d
		out = append(out, &cp)
	}
	sortDeliveriesDesc(out)
	return paginate(out, limit, offset), nil
}

func sortDeliveriesDesc(ds []*entity.Delivery) {
	sort.Slice(ds, func(i, j int) bool {
		if !ds[i].Date.Equal(ds[j].Date) {
			return ds[i].Date.After(ds[j].Date)
		}
		return ds[i].ID < ds[j].ID
	})
}
