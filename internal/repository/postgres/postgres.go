package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/careaxis/hms-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type menuRepository struct {
	db *sqlx.DB
}

type branchRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type prescriptionRepository struct {
	db *sqlx.DB
}

type collectionRepository struct {
	db *sqlx.DB
}

type telecallRepository struct {
	db *sqlx.DB
}

type labTestRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewMenuRepository(db *sqlx.DB) repository.MenuRepository {
	return &menuRepository{db: db}
}

func NewBranchRepository(db *sqlx.DB) repository.BranchRepository {
	return &branchRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func NewCollectionRepository(db *sqlx.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

func NewTelecallRepository(db *sqlx.DB) repository.TelecallRepository {
	return &telecallRepository{db: db}
}

func NewLabTestRepository(db *sqlx.DB) repository.LabTestRepository {
	return &labTestRepository{db: db}
}
