package memory

import (
	"sort"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)
var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)

// DonorRepo donantes en memoria.
type DonorRepo struct {
	s *Store
}

// NewDonorRepository construye el repo de donantes sobre el store.
func NewDonorRepository(s *Store) *DonorRepo {
	return &DonorRepo{s: s}
}

func (r *DonorRepo) Create(donor *entity.Donor) error {
	defer r.s.acquire(false)()
	for _, d := range r.s.donors {
		if d.DocType == donor.DocType && d.DocNumber == donor.DocNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *donor
	r.s.donors[donor.ID] = &cp
	return nil
}

func (r *DonorRepo) Update(donor *entity.Donor) error {
	defer r.s.acquire(false)()
	if _, ok := r.s.donors[donor.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *donor
	r.s.donors[donor.ID] = &cp
	return nil
}

func (r *DonorRepo) GetByID(id string) (*entity.Donor, error) {
	defer r.s.acquire(false)()
	d, ok := r.s.donors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *DonorRepo) GetByDocument(docType, docNumber string) (*entity.Donor, error) {
	defer r.s.acquire(false)()
	for _, d := range r.s.donors {
		if d.DocType == docType && d.DocNumber == docNumber {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *DonorRepo) List(limit, offset int) ([]*entity.Donor, error) {
	defer r.s.acquire(false)()
	all := make([]*entity.Donor, 0, len(r.s.donors))
	for _, d := range r.s.donors {
		cp := *d
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// BeneficiaryRepo beneficiarios en memoria.
type BeneficiaryRepo struct {
	s *Store
}

// NewBeneficiaryRepository construye el repo de beneficiarios sobre el store.
func NewBeneficiaryRepository(s *Store) *BeneficiaryRepo {
	return &BeneficiaryRepo{s: s}
}

func (r *BeneficiaryRepo) Create(b *entity.Beneficiary) error {
	defer r.s.acquire(false)()
	for _, existing := range r.s.beneficiaries {
		if existing.DocType == b.DocType && existing.DocNumber == b.DocNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	r.s.beneficiaries[b.ID] = &cp
	return nil
}

func (r *BeneficiaryRepo) Update(b *entity.Beneficiary) error {
	defer r.s.acquire(false)()
	if _, ok := r.s.beneficiaries[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.s.beneficiaries[b.ID] = &cp
	return nil
}

func (r *BeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	defer r.s.acquire(false)()
	b, ok := r.s.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BeneficiaryRepo) GetByDocument(docType, docNumber string) (*entity.Beneficiary, error) {
	defer r.s.acquire(false)()
	for _, b := range r.s.beneficiaries {
		if b.DocType == docType && b.DocNumber == docNumber {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *BeneficiaryRepo) List(limit, offset int) ([]*entity.Beneficiary, error) {
	defer r.s.acquire(false)()
	all := make([]*entity.Beneficiary, 0, len(r.s.beneficiaries))
	for _, b := range r.s.beneficiaries {
		cp := *b
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repo de usuarios sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(user *entity.User) error {
	defer r.s.acquire(false)()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	defer r.s.acquire(false)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	defer r.s.acquire(false)()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
