package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// In-memory store fakes. They mirror the repository contract, including
// gorm.ErrRecordNotFound from single-entity lookups.

type fakeVehicleStore struct {
	records       map[uint]model.Vehicle
	nextID        uint
	findByIDCalls int
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{records: map[uint]model.Vehicle{}}
}

func (f *fakeVehicleStore) seed(vehicle model.Vehicle) model.Vehicle {
	if vehicle.ID == 0 {
		f.nextID++
		vehicle.ID = f.nextID
	} else if vehicle.ID > f.nextID {
		f.nextID = vehicle.ID
	}
	f.records[vehicle.ID] = vehicle
	return vehicle
}

func (f *fakeVehicleStore) sorted() []model.Vehicle {
	out := make([]model.Vehicle, 0, len(f.records))
	for _, v := range f.records {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeVehicleStore) FindByID(_ context.Context, id uint) (*model.Vehicle, error) {
	f.findByIDCalls++
	vehicle, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &vehicle, nil
}

func (f *fakeVehicleStore) FindByLicensePlate(_ context.Context, plate string) (*model.Vehicle, error) {
	for _, vehicle := range f.records {
		if vehicle.LicensePlate == plate {
			v := vehicle
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicleStore) FindByStatus(_ context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.sorted() {
		if vehicle.Status == status {
			out = append(out, vehicle)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) FindByType(_ context.Context, vehicleType model.VehicleType) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.sorted() {
		if vehicle.Type == vehicleType {
			out = append(out, vehicle)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) FindByBrandAndModel(_ context.Context, brand, vehicleModel string) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.sorted() {
		if vehicle.Brand == brand && vehicle.Model == vehicleModel {
			out = append(out, vehicle)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) FindByDriverID(_ context.Context, driverID uint) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.sorted() {
		if vehicle.DriverID != nil && *vehicle.DriverID == driverID {
			out = append(out, vehicle)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) FindPage(_ context.Context, offset, limit int) ([]model.Vehicle, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeVehicleStore) Save(_ context.Context, vehicle *model.Vehicle) error {
	if vehicle.ID == 0 {
		f.nextID++
		vehicle.ID = f.nextID
	}
	f.records[vehicle.ID] = *vehicle
	return nil
}

func (f *fakeVehicleStore) Delete(_ context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

type fakeDriverStore struct {
	records map[uint]model.Driver
	nextID  uint
}

func newFakeDriverStore() *fakeDriverStore {
	return &fakeDriverStore{records: map[uint]model.Driver{}}
}

func (f *fakeDriverStore) seed(driver model.Driver) model.Driver {
	if driver.ID == 0 {
		f.nextID++
		driver.ID = f.nextID
	} else if driver.ID > f.nextID {
		f.nextID = driver.ID
	}
	f.records[driver.ID] = driver
	return driver
}

func (f *fakeDriverStore) sorted() []model.Driver {
	out := make([]model.Driver, 0, len(f.records))
	for _, d := range f.records {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeDriverStore) FindByID(_ context.Context, id uint) (*model.Driver, error) {
	driver, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &driver, nil
}

func (f *fakeDriverStore) FindByLicenseNumber(_ context.Context, licenseNumber string) (*model.Driver, error) {
	for _, driver := range f.records {
		if driver.LicenseNumber == licenseNumber {
			d := driver
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDriverStore) FindByStatus(_ context.Context, status model.DriverStatus) ([]model.Driver, error) {
	var out []model.Driver
	for _, driver := range f.sorted() {
		if driver.Status == status {
			out = append(out, driver)
		}
	}
	return out, nil
}

func (f *fakeDriverStore) FindPage(_ context.Context, offset, limit int) ([]model.Driver, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeDriverStore) Save(_ context.Context, driver *model.Driver) error {
	if driver.ID == 0 {
		f.nextID++
		driver.ID = f.nextID
	}
	f.records[driver.ID] = *driver
	return nil
}

func (f *fakeDriverStore) Delete(_ context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

type fakeLogStore struct {
	entries []model.AssignmentLog
}

func (f *fakeLogStore) Append(_ context.Context, entry *model.AssignmentLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogStore) ListByVehicle(_ context.Context, vehicleID uint) ([]model.AssignmentLog, error) {
	var out []model.AssignmentLog
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].VehicleID == vehicleID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

// fakeTx hands the same fakes back to every closure; the tests exercise
// rule ordering, not isolation.
type fakeTx struct {
	stores Stores
}

func (f *fakeTx) InTx(_ context.Context, fn func(stores Stores) error) error {
	return fn(f.stores)
}

type recordingCache struct {
	data    map[string]interface{}
	deleted []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: map[string]interface{}{}}
}

func (c *recordingCache) Get(key string) (interface{}, bool) {
	value, ok := c.data[key]
	return value, ok
}

func (c *recordingCache) Set(key string, value interface{}) {
	c.data[key] = value
}

func (c *recordingCache) Delete(keys ...string) {
	for _, key := range keys {
		delete(c.data, key)
		c.deleted = append(c.deleted, key)
	}
}
