package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/contracts"
	"gandall-service/internal/app/drivers/logger"
	fhirOrganizations "gandall-service/internal/app/services/fhir_hapi/organizations"
	fhirPatients "gandall-service/internal/app/services/fhir_hapi/patients"
	fhirPractitioners "gandall-service/internal/app/services/fhir_hapi/practitioners"
	"gandall-service/internal/app/services/shared/fhirauth"
	"gandall-service/internal/app/services/shared/ratelimiter"
	"gandall-service/internal/pkg/fhir_dto"
	"gandall-service/internal/pkg/fhirform"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seeder struct {
	log                *logrus.Logger
	organizationClient contracts.OrganizationFhirClient
	practitionerClient contracts.PractitionerFhirClient
	patientClient      contracts.PatientFhirClient
	dryRun             bool

	organizationIDsByName map[string]string
	created               int
	failed                int
}

func main() {
	fixturesPath := flag.String("fixtures", "seed/fixtures.yaml", "path to the YAML fixture file")
	resourceFilter := flag.String("resource", "", "seed a single resource type: organizations, practitioners or patients")
	dryRun := flag.Bool("dry-run", false, "validate and convert fixtures without writing to the FHIR server")
	flag.Parse()

	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	switch *resourceFilter {
	case "", "organizations", "practitioners", "patients":
	default:
		log.Fatalf("Unknown resource filter: %s", *resourceFilter)
	}

	raw, err := os.ReadFile(*fixturesPath)
	if err != nil {
		log.Fatalf("Error reading fixture file: %v", err)
	}

	var fixtures seedFile
	err = yaml.Unmarshal(raw, &fixtures)
	if err != nil {
		log.Fatalf("Error parsing fixture file: %v", err)
	}

	// The FHIR clients log through zap; the seeder reports through logrus,
	// so the clients run with a no-op logger here.
	zapLogger := zap.NewNop()
	tokenProvider := fhirauth.NewTokenProvider(internalConfig, zapLogger)
	fhirLimiter := ratelimiter.NewFhirLimiter(internalConfig.FHIR.MaxRequestsPerSecond)

	s := &seeder{
		log:                   log,
		organizationClient:    fhirOrganizations.NewOrganizationFhirClient(internalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, zapLogger),
		practitionerClient:    fhirPractitioners.NewPractitionerFhirClient(internalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, zapLogger),
		patientClient:         fhirPatients.NewPatientFhirClient(internalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, zapLogger),
		dryRun:                *dryRun,
		organizationIDsByName: make(map[string]string),
	}

	ctx := context.Background()

	if *resourceFilter == "" || *resourceFilter == "organizations" {
		s.seedOrganizations(ctx, fixtures.Organizations)
	}
	if *resourceFilter == "" || *resourceFilter == "practitioners" {
		s.seedPractitioners(ctx, fixtures.Practitioners)
	}
	if *resourceFilter == "" || *resourceFilter == "patients" {
		s.seedPatients(ctx, fixtures.Patients)
	}

	if s.failed > 0 {
		log.Fatalf("Seeding finished with %d failed entries (%d succeeded)", s.failed, s.created)
	}
	if s.dryRun {
		log.Infof("Dry run finished: %d entries valid", s.created)
		return
	}
	log.Infof("Seeding finished: %d entries created", s.created)
}

// seedOrganizations runs before practitioners and patients so that
// managing-organization references can be resolved from this run. A
// parent named by part_of must appear earlier in the fixture or already
// exist on the server.
func (s *seeder) seedOrganizations(ctx context.Context, seeds []organizationSeed) {
	adapter := &fhirform.OrganizationAdapter{}

	for _, seed := range seeds {
		form := seed.toForm()

		if seed.PartOf != "" {
			parentID, err := s.resolveOrganizationID(ctx, seed.PartOf)
			if err != nil {
				s.fail("Organization %q: %v", seed.Name, err)
				continue
			}
			form.PartOfID = parentID
		}

		if fieldErrors := adapter.ValidationErrors(form); len(fieldErrors) > 0 {
			s.failValidation("Organization", seed.Name, fieldErrors)
			continue
		}

		if s.dryRun {
			s.organizationIDsByName[seed.Name] = ""
			s.log.Infof("Dry run: would create Organization %q", seed.Name)
			s.created++
			continue
		}

		created, err := s.organizationClient.CreateOrganization(ctx, adapter.ToResource(form, ""))
		if err != nil {
			s.fail("Organization %q: %v", seed.Name, err)
			continue
		}
		s.organizationIDsByName[seed.Name] = created.ID
		s.log.Infof("Created Organization %s (%s)", created.ID, seed.Name)
		s.created++
	}
}

func (s *seeder) seedPractitioners(ctx context.Context, seeds []practitionerSeed) {
	adapter := &fhirform.PractitionerAdapter{}

	for _, seed := range seeds {
		form := seed.toForm()
		label := strings.TrimSpace(seed.FirstName + " " + seed.LastName)

		if fieldErrors := adapter.ValidationErrors(form); len(fieldErrors) > 0 {
			s.failValidation("Practitioner", label, fieldErrors)
			continue
		}

		if s.dryRun {
			s.log.Infof("Dry run: would create Practitioner %q", label)
			s.created++
			continue
		}

		created, err := s.practitionerClient.CreatePractitioner(ctx, adapter.ToResource(form, ""))
		if err != nil {
			s.fail("Practitioner %q: %v", label, err)
			continue
		}
		s.log.Infof("Created Practitioner %s (%s)", created.ID, label)
		s.created++
	}
}

func (s *seeder) seedPatients(ctx context.Context, seeds []patientSeed) {
	adapter := &fhirform.PatientAdapter{}

	for _, seed := range seeds {
		form := seed.toForm()
		label := strings.TrimSpace(seed.FirstName + " " + seed.LastName)

		if seed.ManagingOrganization != "" {
			organizationID, err := s.resolveOrganizationID(ctx, seed.ManagingOrganization)
			if err != nil {
				s.fail("Patient %q: %v", label, err)
				continue
			}
			form.ManagingOrganizationID = organizationID
		}

		if fieldErrors := adapter.ValidationErrors(form); len(fieldErrors) > 0 {
			s.failValidation("Patient", label, fieldErrors)
			continue
		}

		if s.dryRun {
			s.log.Infof("Dry run: would create Patient %q", label)
			s.created++
			continue
		}

		created, err := s.patientClient.CreatePatient(ctx, adapter.ToResource(form, ""))
		if err != nil {
			s.fail("Patient %q: %v", label, err)
			continue
		}
		s.log.Infof("Created Patient %s (%s)", created.ID, label)
		s.created++
	}
}

// resolveOrganizationID maps a fixture organization name to a FHIR id,
// preferring organizations created earlier in this run over a server
// lookup. Dry runs never touch the server.
func (s *seeder) resolveOrganizationID(ctx context.Context, name string) (string, error) {
	if id, ok := s.organizationIDsByName[name]; ok {
		return id, nil
	}
	if s.dryRun {
		s.log.Warnf("Organization %q is not part of this fixture; a real run resolves it against the FHIR server", name)
		return "", nil
	}

	matches, _, err := s.organizationClient.FindOrganizationsByName(ctx, name, 1, 20)
	if err != nil {
		return "", err
	}

	var exact []fhir_dto.Organization
	for _, candidate := range matches {
		if strings.EqualFold(candidate.Name, name) {
			exact = append(exact, candidate)
		}
	}

	switch len(exact) {
	case 0:
		return "", fmt.Errorf("organization %q not found on the FHIR server", name)
	case 1:
		s.organizationIDsByName[name] = exact[0].ID
		return exact[0].ID, nil
	default:
		return "", fmt.Errorf("organization name %q is ambiguous: %d server matches", name, len(exact))
	}
}

func (s *seeder) fail(format string, args ...interface{}) {
	s.log.Errorf(format, args...)
	s.failed++
}

func (s *seeder) failValidation(resourceType, label string, fieldErrors map[string]string) {
	for field, message := range fieldErrors {
		s.log.Errorf("%s %q: %s: %s", resourceType, label, field, message)
	}
	s.failed++
}
