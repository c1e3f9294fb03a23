// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"io"
	"net"
	"net/http"
	"os"
	"os/user"
	"strings"
	"time"
)

const AWSProfile = "truchet"

// getAWSSession prefers the shared credentials file and falls back to the
// instance role.
func getAWSSession(region string) (*session.Session, error) {
	var creds *credentials.Credentials
	if path, ok := sharedCredentialsPath(); ok {
		creds = credentials.NewSharedCredentials(path, AWSProfile)
	} else {
		metadataSession, err := session.NewSession(aws.NewConfig())
		if err != nil {
			return nil, err
		}
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: ec2metadata.New(metadataSession)})
	}

	return session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
}

func sharedCredentialsPath() (string, bool) {
	if path := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); path != "" {
		return path, true
	}
	usr, err := user.Current()
	if err != nil {
		return "", false
	}
	path := fmt.Sprintf("%s/.aws/credentials", usr.HomeDir)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// PublicIP asks AWS for the address this machine is reachable at.
func PublicIP() (net.IP, error) {
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://checkip.amazonaws.com")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return nil, err
	}
	ipString := strings.TrimSpace(string(body))
	ip := net.ParseIP(ipString)
	if ip == nil {
		return nil, errors.New("could not parse IP address '" + ipString + "'")
	}
	return ip, nil
}
