// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud stores rendered images and their catalog entries.
package cloud

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/cloud/db"
	"github.com/SoftbearStudios/truchet/cloud/dns"
	"github.com/SoftbearStudios/truchet/cloud/fs"
	"github.com/aws/aws-sdk-go/aws/session"
	"net"
	"strings"
	"time"
)

// RenderCacheSeconds is the cache lifetime of uploaded renders. Names are
// never reused, so files are immutable.
const RenderCacheSeconds = 60 * 60 * 24 * 365

var ErrOffline = errors.New("cloud is offline")

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means nothing is saved
type Cloud struct {
	name     string
	fs       fs.Filesystem
	database db.Database
	dns      dns.DNS
	// session is nil unless backed by AWS
	session *session.Session
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.name)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to S3 and DynamoDB for a stage.
func New(region, stage string) (*Cloud, error) {
	if region == "" || stage == "" {
		return nil, errors.New("missing region or stage")
	}

	session, err := getAWSSession(region)
	if err != nil {
		return nil, err
	}

	filesystem, err := fs.NewS3Filesystem(session, stage)
	if err != nil {
		return nil, err
	}
	database, err := db.NewDynamoDBDatabase(session, stage)
	if err != nil {
		return nil, err
	}

	return &Cloud{
		name:     region + " " + stage,
		fs:       filesystem,
		database: database,
		session:  session,
	}, nil
}

// NewLocal writes files under dir and keeps the catalog in memory.
func NewLocal(dir string) (*Cloud, error) {
	filesystem, err := fs.NewLocalFilesystem(dir)
	if err != nil {
		return nil, err
	}
	return NewWith("local "+dir, filesystem, db.NewMemoryDatabase()), nil
}

func NewWith(name string, filesystem fs.Filesystem, database db.Database) *Cloud {
	return &Cloud{name: name, fs: filesystem, database: database}
}

// EnableDNS lets Announce update records in a Route 53 zone.
func (cloud *Cloud) EnableDNS(domain, zoneID string) error {
	if cloud == nil {
		return ErrOffline
	}
	if cloud.session == nil {
		return errors.New("DNS requires an AWS cloud")
	}
	cloud.dns = dns.NewRoute53DNS(cloud.session, domain, zoneID)
	return nil
}

// Announce points host at address, typically the result of PublicIP.
func (cloud *Cloud) Announce(host string, address net.IP) error {
	if cloud == nil {
		return ErrOffline
	}
	if cloud.dns == nil {
		return errors.New("DNS not enabled")
	}
	return cloud.dns.UpdateRoute(host, address)
}

// Upload stores one file.
func (cloud *Cloud) Upload(filename string, data []byte) error {
	if cloud == nil {
		return nil
	}
	return cloud.fs.UploadStaticFile(filename, RenderCacheSeconds, data)
}

// SaveRender reserves render.Name in the catalog, then uploads files under
// renders/<name>/. The first file is recorded as the image. If an upload
// fails the reservation is released, so the name can be saved again.
func (cloud *Cloud) SaveRender(render db.Render, files []File) (db.Render, error) {
	if cloud == nil {
		return render, ErrOffline
	}
	if render.Created == 0 {
		render.Created = time.Now().Unix()
	}
	if len(files) > 0 {
		render.Image = RenderPath(render.Name, files[0].Name)
	}

	if err := cloud.database.PutRender(render); err != nil {
		return render, fmt.Errorf("cataloging %s: %w", render.Name, err)
	}
	for _, file := range files {
		if err := cloud.Upload(RenderPath(render.Name, file.Name), file.Data); err != nil {
			err = fmt.Errorf("uploading %s: %w", file.Name, err)
			if deleteErr := cloud.database.DeleteRender(render.Name); deleteErr != nil {
				err = errors.Join(err, fmt.Errorf("releasing %s: %w", render.Name, deleteErr))
			}
			return render, err
		}
	}
	return render, nil
}

func (cloud *Cloud) Renders() ([]db.Render, error) {
	if cloud == nil {
		return nil, nil
	}
	return cloud.database.ReadRenders()
}

func (cloud *Cloud) Render(name string) (db.Render, error) {
	if cloud == nil {
		return db.Render{}, db.ErrNotFound
	}
	return cloud.database.ReadRender(name)
}

// File is a named blob belonging to a render.
type File struct {
	Name string
	Data []byte
}

func RenderPath(name, file string) string {
	return "renders/" + name + "/" + file
}
