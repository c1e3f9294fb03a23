// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
	"net"
)

// RecordTTL is short so a replaced server is picked up quickly.
const RecordTTL = 60

type Route53DNS struct {
	svc    *route53.Route53
	domain string
	zoneID string
}

func NewRoute53DNS(session *session.Session, domain string, zoneID string) *Route53DNS {
	return &Route53DNS{svc: route53.New(session), domain: domain, zoneID: zoneID}
}

func (route53DNS *Route53DNS) UpdateRoute(host string, address net.IP) error {
	name, err := RecordName(host, route53DNS.domain)
	if err != nil {
		return err
	}

	recordType := "A"
	if address.To4() == nil {
		recordType = "AAAA"
	}

	request := &route53.ChangeResourceRecordSetsInput{
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{
				{
					Action: aws.String(route53.ChangeActionUpsert),
					ResourceRecordSet: &route53.ResourceRecordSet{
						Name: aws.String(name),
						Type: aws.String(recordType),
						ResourceRecords: []*route53.ResourceRecord{
							{
								Value: aws.String(address.String()),
							},
						},
						TTL: aws.Int64(RecordTTL),
					},
				},
			},
		},
		HostedZoneId: aws.String(route53DNS.zoneID),
	}
	if _, err := route53DNS.svc.ChangeResourceRecordSets(request); err != nil {
		return fmt.Errorf("updating %s: %w", name, err)
	}
	return nil
}

func (route53DNS *Route53DNS) String() string {
	return "route53 " + route53DNS.domain
}
