package service_test

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/service"
)

// In-memory stores backing the service tests. They mirror the ordering and
// matching behavior of the SQL and Mongo stores closely enough for the
// services not to tell the difference.

type fakeAdmins struct {
	byUsername map[string]*models.Admin
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byUsername: make(map[string]*models.Admin)}
}

func (f *fakeAdmins) add(username, password string) *models.Admin {
	admin := &models.Admin{Username: username}
	admin.ID = "admin-" + username
	if err := admin.SetPassword(password); err != nil {
		panic(err)
	}
	f.byUsername[username] = admin
	return admin
}

func (f *fakeAdmins) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if admin, ok := f.byUsername[username]; ok {
		return admin, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdmins) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

type fakeDoctors struct {
	byID map[string]*models.Doctor
}

func newFakeDoctors() *fakeDoctors {
	return &fakeDoctors{byID: make(map[string]*models.Doctor)}
}

func (f *fakeDoctors) add(id, name, specialty, email string, slots ...string) *models.Doctor {
	doctor := &models.Doctor{
		Name:           name,
		Specialty:      specialty,
		Email:          email,
		AvailableTimes: slots,
	}
	doctor.ID = id
	f.byID[id] = doctor
	return doctor
}

func (f *fakeDoctors) Create(_ context.Context, doctor *models.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = "doctor-" + doctor.Email
	}
	for _, existing := range f.byID {
		if existing.Email == doctor.Email {
			return repository.ErrDuplicate
		}
	}
	f.byID[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctors) Save(_ context.Context, doctor *models.Doctor) error {
	f.byID[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctors) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeDoctors) FindByID(_ context.Context, id string) (*models.Doctor, error) {
	if doctor, ok := f.byID[id]; ok {
		return doctor, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctors) FindByEmail(_ context.Context, email string) (*models.Doctor, error) {
	for _, doctor := range f.byID {
		if doctor.Email == email {
			return doctor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctors) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeDoctors) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, doctor := range f.byID {
		if doctor.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctors) List(_ context.Context) ([]models.Doctor, error) {
	doctors := make([]models.Doctor, 0, len(f.byID))
	for _, doctor := range f.byID {
		doctors = append(doctors, *doctor)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

func (f *fakeDoctors) FindByNameLike(ctx context.Context, name string) ([]models.Doctor, error) {
	all, _ := f.List(ctx)
	matched := make([]models.Doctor, 0, len(all))
	for _, doctor := range all {
		if strings.Contains(strings.ToLower(doctor.Name), strings.ToLower(name)) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

func (f *fakeDoctors) FindBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	all, _ := f.List(ctx)
	matched := make([]models.Doctor, 0, len(all))
	for _, doctor := range all {
		if strings.EqualFold(doctor.Specialty, specialty) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

func (f *fakeDoctors) FindByNameLikeAndSpecialty(ctx context.Context, name, specialty string) ([]models.Doctor, error) {
	byName, _ := f.FindByNameLike(ctx, name)
	matched := make([]models.Doctor, 0, len(byName))
	for _, doctor := range byName {
		if strings.EqualFold(doctor.Specialty, specialty) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

type fakePatients struct {
	byID map[string]*models.Patient
}

func newFakePatients() *fakePatients {
	return &fakePatients{byID: make(map[string]*models.Patient)}
}

func (f *fakePatients) add(id, name, email, phone string) *models.Patient {
	patient := &models.Patient{Name: name, Email: email, Phone: phone}
	patient.ID = id
	f.byID[id] = patient
	return patient
}

func (f *fakePatients) Create(_ context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = "patient-" + patient.Email
	}
	for _, existing := range f.byID {
		if existing.Email == patient.Email {
			return repository.ErrDuplicate
		}
	}
	f.byID[patient.ID] = patient
	return nil
}

func (f *fakePatients) FindByID(_ context.Context, id string) (*models.Patient, error) {
	if patient, ok := f.byID[id]; ok {
		return patient, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatients) FindByEmail(_ context.Context, email string) (*models.Patient, error) {
	for _, patient := range f.byID {
		if patient.Email == email {
			return patient, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatients) FindByEmailOrPhone(_ context.Context, email, phone string) (*models.Patient, error) {
	for _, patient := range f.byID {
		if patient.Email == email || patient.Phone == phone {
			return patient, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatients) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, patient := range f.byID {
		if patient.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeAppointments struct {
	byID     map[string]*models.Appointment
	doctors  *fakeDoctors
	patients *fakePatients
	nextID   int
}

func newFakeAppointments(doctors *fakeDoctors, patients *fakePatients) *fakeAppointments {
	return &fakeAppointments{
		byID:     make(map[string]*models.Appointment),
		doctors:  doctors,
		patients: patients,
	}
}

// preload fills the relations the way the SQL store's Preload does.
func (f *fakeAppointments) preload(appt *models.Appointment) {
	if doctor, ok := f.doctors.byID[appt.DoctorID]; ok {
		appt.Doctor = *doctor
	}
	if patient, ok := f.patients.byID[appt.PatientID]; ok {
		appt.Patient = *patient
	}
}

func (f *fakeAppointments) Create(_ context.Context, appt *models.Appointment) error {
	for _, existing := range f.byID {
		if existing.DoctorID == appt.DoctorID && existing.AppointmentTime.Equal(appt.AppointmentTime) {
			return repository.ErrDuplicate
		}
	}
	if appt.ID == "" {
		f.nextID++
		appt.ID = "appt-" + strconv.Itoa(f.nextID)
	}
	f.preload(appt)
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointments) Save(_ context.Context, appt *models.Appointment) error {
	for _, existing := range f.byID {
		if existing.ID != appt.ID && existing.DoctorID == appt.DoctorID && existing.AppointmentTime.Equal(appt.AppointmentTime) {
			return repository.ErrDuplicate
		}
	}
	f.preload(appt)
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointments) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	if appt, ok := f.byID[id]; ok {
		return appt, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointments) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAppointments) DeleteAllByDoctor(_ context.Context, doctorID string) error {
	for id, appt := range f.byID {
		if appt.DoctorID == doctorID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id string, status int) error {
	appt, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointments) all(match func(*models.Appointment) bool) []models.Appointment {
	appts := make([]models.Appointment, 0, len(f.byID))
	for _, appt := range f.byID {
		if match(appt) {
			appts = append(appts, *appt)
		}
	}
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].AppointmentTime.Before(appts[j].AppointmentTime)
	})
	return appts
}

func (f *fakeAppointments) ListForDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (f *fakeAppointments) ListForDoctorByPatientName(_ context.Context, doctorID, patientName string) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.DoctorID == doctorID &&
			strings.Contains(strings.ToLower(a.Patient.Name), strings.ToLower(patientName))
	}), nil
}

func (f *fakeAppointments) ListForDoctorBetween(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.DoctorID == doctorID &&
			!a.AppointmentTime.Before(start) && a.AppointmentTime.Before(end)
	}), nil
}

func (f *fakeAppointments) ListForDoctorByPatientNameBetween(_ context.Context, doctorID, patientName string, start, end time.Time) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.DoctorID == doctorID &&
			strings.Contains(strings.ToLower(a.Patient.Name), strings.ToLower(patientName)) &&
			!a.AppointmentTime.Before(start) && a.AppointmentTime.Before(end)
	}), nil
}

func (f *fakeAppointments) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (f *fakeAppointments) ListForPatientByStatus(_ context.Context, patientID string, status int) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.PatientID == patientID && a.Status == status
	}), nil
}

func (f *fakeAppointments) ListForPatientByDoctorName(_ context.Context, patientID, doctorName string) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.PatientID == patientID &&
			strings.Contains(strings.ToLower(a.Doctor.Name), strings.ToLower(doctorName))
	}), nil
}

func (f *fakeAppointments) ListForPatientByDoctorNameAndStatus(_ context.Context, patientID, doctorName string, status int) ([]models.Appointment, error) {
	return f.all(func(a *models.Appointment) bool {
		return a.PatientID == patientID && a.Status == status &&
			strings.Contains(strings.ToLower(a.Doctor.Name), strings.ToLower(doctorName))
	}), nil
}

type fakePrescriptions struct {
	byAppointment map[string][]models.Prescription
}

func newFakePrescriptions() *fakePrescriptions {
	return &fakePrescriptions{byAppointment: make(map[string][]models.Prescription)}
}

func (f *fakePrescriptions) Insert(_ context.Context, prescription *models.Prescription) error {
	if _, ok := f.byAppointment[prescription.AppointmentID]; ok {
		return repository.ErrDuplicate
	}
	if prescription.ID == "" {
		prescription.ID = "rx-" + prescription.AppointmentID
	}
	f.byAppointment[prescription.AppointmentID] = []models.Prescription{*prescription}
	return nil
}

func (f *fakePrescriptions) FindByAppointment(_ context.Context, appointmentID string) ([]models.Prescription, error) {
	return f.byAppointment[appointmentID], nil
}

// env bundles the fakes and fully wired services the way routes.SetupRoutes
// does in production.
type env struct {
	admins        *fakeAdmins
	doctors       *fakeDoctors
	patients      *fakePatients
	appointments  *fakeAppointments
	prescriptions *fakePrescriptions

	tokens              *service.TokenService
	adminService        *service.AdminService
	doctorService       *service.DoctorService
	patientService      *service.PatientService
	scheduling          *service.SchedulingService
	prescriptionService *service.PrescriptionService
}

func newEnv() *env {
	return newEnvStrict(true)
}

func newEnvStrict(strictStatus bool) *env {
	e := &env{
		admins:        newFakeAdmins(),
		doctors:       newFakeDoctors(),
		patients:      newFakePatients(),
		prescriptions: newFakePrescriptions(),
	}
	e.appointments = newFakeAppointments(e.doctors, e.patients)

	e.tokens = service.NewTokenService("test-secret", 7, e.admins, e.doctors, e.patients)
	e.adminService = service.NewAdminService(e.admins, e.tokens)
	e.doctorService = service.NewDoctorService(e.doctors, e.appointments, e.tokens)
	e.patientService = service.NewPatientService(e.patients, e.tokens)
	e.scheduling = service.NewSchedulingService(e.appointments, e.doctors, e.patients, e.tokens, e.doctorService, strictStatus)
	e.prescriptionService = service.NewPrescriptionService(e.prescriptions, e.appointments, e.scheduling)
	return e
}

func (e *env) tokenFor(t testingT, subject string) string {
	t.Helper()
	token, err := e.tokens.Generate(subject)
	if err != nil {
		t.Fatalf("generating token for %q: %v", subject, err)
	}
	return token
}

// testingT is the subset of *testing.T the helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
